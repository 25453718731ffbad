package entity

// Status is the moderation state of a submitted place.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// String returns the status as stored in the database.
func (s Status) String() string {
	return string(s)
}

// StatusFromString parses a moderation decision; only approved and rejected
// are valid decisions, anything else returns false.
func StatusFromString(v string) (Status, bool) {
	switch Status(v) {
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

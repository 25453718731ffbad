package entity

import "time"

// Place is a community-submitted accessible place.
type Place struct {
	ID        int64
	Name      string
	Type      string
	Address   string
	City      string
	Features  []string
	Comments  string
	ImageKey  string
	Status    Status
	CreatedAt time.Time
}

// NewPlace carries the fields required to persist a submission.
type NewPlace struct {
	ID       int64
	Name     string
	Type     string
	Address  string
	City     string
	Features []string
	Comments string
	ImageKey string
	Status   Status
}

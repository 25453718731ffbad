package entity

// Role is the authorization role attached to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// String returns the role as stored in the database and JWT claims.
func (r Role) String() string {
	return string(r)
}

// Ensure normalizes unknown role values to RoleUser.
func (r Role) Ensure() Role {
	if r == RoleAdmin {
		return RoleAdmin
	}

	return RoleUser
}

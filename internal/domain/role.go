package domain

// Role is the authorization level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity is what a verified token says about the caller
type Identity struct {
	ID    string `json:"userId"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

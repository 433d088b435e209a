package domain

// Role tells what a user is allowed to do.
type Role string

// Supported roles.
const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// Valid reports whether r is a supported role.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller:
		return true
	}

	return false
}

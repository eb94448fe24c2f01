package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleMerchant is assigned on every self-service and provider-driven creation.
	RoleMerchant Role = "MERCHANT"
	// RoleAdmin is only assigned out of band.
	RoleAdmin Role = "ADMIN"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleMerchant, RoleAdmin:
		return true
	default:
		return false
	}
}

package domain

// Role defines the access level of a login user.
type Role int32

const (
	RoleCustomer Role = 1
	RoleAdmin    Role = 2
	RoleEmployee Role = 3
	RoleManager  Role = 4
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "CUSTOMER"
	case RoleAdmin:
		return "ADMIN"
	case RoleEmployee:
		return "EMPLOYEE"
	case RoleManager:
		return "MANAGER"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	return r >= RoleCustomer && r <= RoleManager
}

// User is a login record for any role. Passwords are stored in cleartext
// inside a fixed slot of the on-disk record; this is a known weakness kept
// for parity with the historical data files.
type User struct {
	UserID   int32
	Name     string // at most UserNameLen-1 bytes survive the round trip
	Password string // at most UserPasswordLen-1 bytes survive the round trip
	Role     Role
	IsActive bool
}

// Fixed slot widths of the on-disk user record.
const (
	UserNameLen     = 50
	UserPasswordLen = 20
)

// Seed values for an empty user store.
const (
	SeedAdminID       = 1000
	SeedAdminName     = "Admin User"
	SeedAdminPassword = "admin123"
)

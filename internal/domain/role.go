package domain

// Role is the coarse permission tag carried by an identity.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Home paths of the two UI areas.
const (
	AdminHomePath    = "/admin-dashboard"
	EmployeeHomePath = "/employee-dashboard"
	LoginPath        = "/login"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// HomePath returns the UI area an identity with this role lands on.
func (r Role) HomePath() string {
	if r == RoleAdmin {
		return AdminHomePath
	}
	if r == RoleEmployee {
		return EmployeeHomePath
	}
	return LoginPath
}

// Access is the role requirement declared by a route or view.
type Access string

const (
	AccessAdmin    Access = "admin"
	AccessEmployee Access = "employee"
	AccessBoth     Access = "both"
)

// Allows reports whether an authenticated identity with role r may proceed.
func (a Access) Allows(r Role) bool {
	switch a {
	case AccessBoth:
		return r.Valid()
	case AccessAdmin:
		return r == RoleAdmin
	case AccessEmployee:
		return r == RoleEmployee
	default:
		return false
	}
}

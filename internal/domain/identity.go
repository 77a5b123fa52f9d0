package domain

import "time"

// Administrator is a record from the administrator store.
type Administrator struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	JobTitle     string    `json:"jobTitle,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is either an administrator or an employee. Exactly one of the
// pointers is set; the role is implied by which one.
type Identity struct {
	Admin    *Administrator
	Employee *Employee
}

// AdminIdentity wraps an administrator record.
func AdminIdentity(a *Administrator) Identity {
	return Identity{Admin: a}
}

// EmployeeIdentity wraps an employee record.
func EmployeeIdentity(e *Employee) Identity {
	return Identity{Employee: e}
}

// Role is derived from the store the record came from, never from input.
func (i Identity) Role() Role {
	switch {
	case i.Admin != nil:
		return RoleAdmin
	case i.Employee != nil:
		return RoleEmployee
	default:
		return ""
	}
}

func (i Identity) ID() string {
	switch {
	case i.Admin != nil:
		return i.Admin.ID
	case i.Employee != nil:
		return i.Employee.ID
	default:
		return ""
	}
}

func (i Identity) Email() string {
	switch {
	case i.Admin != nil:
		return i.Admin.Email
	case i.Employee != nil:
		return i.Employee.Email
	default:
		return ""
	}
}

// Name is the display name; employees use "first last".
func (i Identity) Name() string {
	switch {
	case i.Admin != nil:
		return i.Admin.Name
	case i.Employee != nil:
		return i.Employee.FullName()
	default:
		return ""
	}
}

func (i Identity) PasswordHash() string {
	switch {
	case i.Admin != nil:
		return i.Admin.PasswordHash
	case i.Employee != nil:
		return i.Employee.PasswordHash
	default:
		return ""
	}
}

// IsZero reports whether no record is held.
func (i Identity) IsZero() bool {
	return i.Admin == nil && i.Employee == nil
}

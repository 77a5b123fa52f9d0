package domain

import "time"

// Gender values accepted for employees.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Employee is a record from the employee store.
type Employee struct {
	ID             string    `json:"id"`
	EmployeeCode   string    `json:"employeeId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Gender         Gender    `json:"gender"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	Salary         float64   `json:"salary"`
	DepartmentID   string    `json:"department"`
	DepartmentName string    `json:"departmentName,omitempty"`
	Designation    string    `json:"designation"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

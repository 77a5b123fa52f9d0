package dto

import "github.com/spec-kit/employee-service/internal/domain"

// DepartmentRequest payload for creating a department.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// DepartmentUpdateRequest payload for updating a department.
type DepartmentUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

// EmployeeRequest payload for creating an employee.
type EmployeeRequest struct {
	EmployeeID  string        `json:"employeeId" validate:"required"`
	FirstName   string        `json:"firstName" validate:"required"`
	LastName    string        `json:"lastName" validate:"required"`
	Email       string        `json:"email" validate:"required,email"`
	Gender      domain.Gender `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth string        `json:"dateOfBirth" validate:"required"`
	Salary      float64       `json:"salary" validate:"gte=0"`
	Department  string        `json:"department" validate:"required"`
	Designation string        `json:"designation" validate:"required"`
	Password    string        `json:"password" validate:"required,min=6"`
}

// EmployeeUpdateRequest payload for updating an employee; absent fields are kept.
type EmployeeUpdateRequest struct {
	EmployeeID  *string        `json:"employeeId" validate:"omitempty,min=1"`
	FirstName   *string        `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string        `json:"lastName" validate:"omitempty,min=1"`
	Email       *string        `json:"email" validate:"omitempty,email"`
	Gender      *domain.Gender `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *string        `json:"dateOfBirth"`
	Salary      *float64       `json:"salary" validate:"omitempty,gte=0"`
	Department  *string        `json:"department" validate:"omitempty,min=1"`
	Designation *string        `json:"designation"`
	Password    *string        `json:"password" validate:"omitempty,min=6"`
}

// AllowancesRequest mirrors domain.Allowances without the derived total.
type AllowancesRequest struct {
	HRA     float64 `json:"hra" validate:"gte=0"`
	DA      float64 `json:"da" validate:"gte=0"`
	Medical float64 `json:"medical" validate:"gte=0"`
	TA      float64 `json:"ta" validate:"gte=0"`
}

// Domain converts to the domain type.
func (a AllowancesRequest) Domain() domain.Allowances {
	return domain.Allowances{HRA: a.HRA, DA: a.DA, Medical: a.Medical, TA: a.TA}
}

// DeductionsRequest mirrors domain.Deductions without the derived total.
type DeductionsRequest struct {
	PF        float64 `json:"pf" validate:"gte=0"`
	Tax       float64 `json:"tax" validate:"gte=0"`
	Insurance float64 `json:"insurance" validate:"gte=0"`
}

// Domain converts to the domain type.
func (d DeductionsRequest) Domain() domain.Deductions {
	return domain.Deductions{PF: d.PF, Tax: d.Tax, Insurance: d.Insurance}
}

// SalaryRequest payload for recording a salary.
type SalaryRequest struct {
	Employee    string              `json:"employee" validate:"required"`
	BasicSalary float64             `json:"basicSalary" validate:"gt=0"`
	Allowances  AllowancesRequest   `json:"allowances"`
	Deductions  DeductionsRequest   `json:"deductions"`
	PaymentDate string              `json:"paymentDate" validate:"required"`
	Status      domain.SalaryStatus `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
}

// SalaryUpdateRequest payload for updating a salary; absent fields are kept.
type SalaryUpdateRequest struct {
	BasicSalary *float64             `json:"basicSalary" validate:"omitempty,gt=0"`
	Allowances  *AllowancesRequest   `json:"allowances"`
	Deductions  *DeductionsRequest   `json:"deductions"`
	PaymentDate *string              `json:"paymentDate"`
	Status      *domain.SalaryStatus `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
}

// AttendanceEntry is one employee's mark on the sheet.
type AttendanceEntry struct {
	Employee string                  `json:"employee" validate:"required"`
	Status   domain.AttendanceStatus `json:"status" validate:"required,oneof=present absent"`
}

// AttendanceRequest payload for marking a day.
type AttendanceRequest struct {
	Date    string            `json:"date" validate:"required,datetime=2006-01-02"`
	Records []AttendanceEntry `json:"records" validate:"required,min=1,dive"`
}

// LeaveRequest payload for filing a leave request.
type LeaveRequest struct {
	FromDate  string           `json:"fromDate" validate:"required"`
	ToDate    string           `json:"toDate" validate:"required"`
	Reason    string           `json:"reason" validate:"required"`
	LeaveType domain.LeaveType `json:"leaveType" validate:"required,oneof=sick casual annual"`
}

// LeaveReviewRequest payload for approving or rejecting a request.
type LeaveReviewRequest struct {
	Status domain.LeaveStatus `json:"status" validate:"required,oneof=approved rejected"`
}

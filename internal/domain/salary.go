package domain

import "time"

// SalaryStatus tracks payment state.
type SalaryStatus string

const (
	SalaryStatusPending   SalaryStatus = "pending"
	SalaryStatusPaid      SalaryStatus = "paid"
	SalaryStatusCancelled SalaryStatus = "cancelled"
)

// Allowances are added to the basic salary.
type Allowances struct {
	HRA     float64 `json:"hra"`
	DA      float64 `json:"da"`
	Medical float64 `json:"medical"`
	TA      float64 `json:"ta"`
	Total   float64 `json:"total"`
}

// Deductions are subtracted from the basic salary.
type Deductions struct {
	PF        float64 `json:"pf"`
	Tax       float64 `json:"tax"`
	Insurance float64 `json:"insurance"`
	Total     float64 `json:"total"`
}

// Salary is one monthly payment record.
type Salary struct {
	ID           string       `json:"id"`
	EmployeeID   string       `json:"employee"`
	DepartmentID string       `json:"department"`
	EmployeeName string       `json:"employeeName,omitempty"`
	EmployeeCode string       `json:"employeeCode,omitempty"`
	BasicSalary  float64      `json:"basicSalary"`
	Allowances   Allowances   `json:"allowances"`
	Deductions   Deductions   `json:"deductions"`
	NetSalary    float64      `json:"netSalary"`
	PaymentDate  time.Time    `json:"paymentDate"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	Status       SalaryStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Recalculate refreshes both totals, the net amount, and the pay period.
func (s *Salary) Recalculate() {
	s.Allowances.Total = s.Allowances.HRA + s.Allowances.DA + s.Allowances.Medical + s.Allowances.TA
	s.Deductions.Total = s.Deductions.PF + s.Deductions.Tax + s.Deductions.Insurance
	s.NetSalary = s.BasicSalary + s.Allowances.Total - s.Deductions.Total
	if !s.PaymentDate.IsZero() {
		s.Month = int(s.PaymentDate.Month())
		s.Year = s.PaymentDate.Year()
	}
}

// ValidSalaryStatus reports whether status is known.
func ValidSalaryStatus(status SalaryStatus) bool {
	switch status {
	case SalaryStatusPending, SalaryStatusPaid, SalaryStatusCancelled:
		return true
	}
	return false
}

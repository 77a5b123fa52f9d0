package domain

import "time"

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveType classifies a request.
type LeaveType string

const (
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeAnnual LeaveType = "annual"
)

// Leave is a leave request filed by an employee.
type Leave struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee"`
	EmployeeName string      `json:"employeeName,omitempty"`
	FromDate     time.Time   `json:"fromDate"`
	ToDate       time.Time   `json:"toDate"`
	Reason       string      `json:"reason"`
	LeaveType    LeaveType   `json:"leaveType"`
	Status       LeaveStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// LeaveStats counts leave requests by status.
type LeaveStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// DashboardSummary is the admin overview.
type DashboardSummary struct {
	EmployeeCount   int        `json:"employeeCount"`
	DepartmentCount int        `json:"departmentCount"`
	TotalPayroll    float64    `json:"totalPayroll"`
	LeaveStats      LeaveStats `json:"leaveStats"`
}

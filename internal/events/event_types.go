package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated    EventType = "employee_created"
	EventLeaveRequested     EventType = "leave_requested"
	EventLeaveStatusChanged EventType = "leave_status_changed"
	EventSalaryRecorded     EventType = "salary_recorded"
)

// Actor identifies who caused the event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID string      `json:"employee_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, employeeID string, actor Actor, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email"`
	DepartmentID string `json:"department_id"`
}

// LeaveRequestedPayload payload.
type LeaveRequestedPayload struct {
	LeaveID   string           `json:"leave_id"`
	LeaveType domain.LeaveType `json:"leave_type"`
	FromDate  time.Time        `json:"from_date"`
	ToDate    time.Time        `json:"to_date"`
}

// LeaveStatusChangedPayload payload.
type LeaveStatusChangedPayload struct {
	LeaveID   string             `json:"leave_id"`
	OldStatus domain.LeaveStatus `json:"old_status"`
	NewStatus domain.LeaveStatus `json:"new_status"`
}

// SalaryRecordedPayload payload.
type SalaryRecordedPayload struct {
	SalaryID  string              `json:"salary_id"`
	Month     int                 `json:"month"`
	Year      int                 `json:"year"`
	NetSalary float64             `json:"net_salary"`
	Status    domain.SalaryStatus `json:"status"`
}

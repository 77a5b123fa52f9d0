package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// LeaveService handles leave requests and their review.
type LeaveService struct {
	leaves     repository.LeaveRepository
	dispatcher events.Dispatcher
}

// LeaveInput describes a new request.
type LeaveInput struct {
	FromDate  time.Time
	ToDate    time.Time
	Reason    string
	LeaveType domain.LeaveType
}

// NewLeaveService constructs the service.
func NewLeaveService(leaves repository.LeaveRepository, dispatcher events.Dispatcher) *LeaveService {
	return &LeaveService{leaves: leaves, dispatcher: dispatcher}
}

// RequestLeave files a pending request for the calling employee.
func (s *LeaveService) RequestLeave(ctx context.Context, actor domain.Identity, input LeaveInput) (*domain.Leave, error) {
	if actor.Role() != domain.RoleEmployee {
		return nil, apperrors.NewForbidden("only employees can request leave")
	}
	switch input.LeaveType {
	case domain.LeaveTypeSick, domain.LeaveTypeCasual, domain.LeaveTypeAnnual:
	default:
		return nil, apperrors.NewValidationError("leaveType must be sick, casual or annual", map[string]any{"leaveType": input.LeaveType})
	}
	if input.FromDate.IsZero() || input.ToDate.IsZero() {
		return nil, apperrors.NewValidationError("fromDate and toDate are required", nil)
	}
	if input.ToDate.Before(input.FromDate) {
		return nil, apperrors.NewValidationError("toDate must not be before fromDate", nil)
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason is required", nil)
	}

	leave := &domain.Leave{
		EmployeeID:   actor.ID(),
		EmployeeName: actor.Name(),
		FromDate:     input.FromDate,
		ToDate:       input.ToDate,
		Reason:       reason,
		LeaveType:    input.LeaveType,
		Status:       domain.LeaveStatusPending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.New(events.EventLeaveRequested, leave.EmployeeID, actorOf(actor), events.LeaveRequestedPayload{
		LeaveID:   leave.ID,
		LeaveType: leave.LeaveType,
		FromDate:  leave.FromDate,
		ToDate:    leave.ToDate,
	}))
	return leave, nil
}

// EmployeeLeaves returns the caller's requests, newest first.
func (s *LeaveService) EmployeeLeaves(ctx context.Context, employeeID string) ([]domain.Leave, error) {
	leaves, err := s.leaves.List(ctx, repository.LeaveFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leaves, nil
}

// AllLeaves returns every request, newest first.
func (s *LeaveService) AllLeaves(ctx context.Context) ([]domain.Leave, error) {
	leaves, err := s.leaves.List(ctx, repository.LeaveFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leaves, nil
}

// ReviewLeave approves or rejects a request.
func (s *LeaveService) ReviewLeave(ctx context.Context, actor domain.Identity, leaveID string, status domain.LeaveStatus) (*domain.Leave, error) {
	if status != domain.LeaveStatusApproved && status != domain.LeaveStatusRejected {
		return nil, apperrors.NewValidationError("status must be approved or rejected", map[string]any{"status": status})
	}
	current, err := s.leaves.GetByID(ctx, leaveID)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "leave")
	}
	updated, err := s.leaves.UpdateStatus(ctx, leaveID, status)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "leave")
	}

	if current.Status != updated.Status {
		s.publish(ctx, events.New(events.EventLeaveStatusChanged, updated.EmployeeID, actorOf(actor), events.LeaveStatusChangedPayload{
			LeaveID:   updated.ID,
			OldStatus: current.Status,
			NewStatus: updated.Status,
		}))
	}
	return updated, nil
}

func (s *LeaveService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

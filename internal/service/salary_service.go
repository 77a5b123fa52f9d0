package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// SalaryService records payroll entries.
type SalaryService struct {
	salaries   repository.SalaryRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
}

// SalaryInput describes a salary record. Totals are always recomputed.
type SalaryInput struct {
	EmployeeID  string
	BasicSalary float64
	Allowances  domain.Allowances
	Deductions  domain.Deductions
	PaymentDate time.Time
	Status      domain.SalaryStatus
}

// SalaryUpdateInput carries changed fields; nil fields are kept.
type SalaryUpdateInput struct {
	BasicSalary *float64
	Allowances  *domain.Allowances
	Deductions  *domain.Deductions
	PaymentDate *time.Time
	Status      *domain.SalaryStatus
}

// NewSalaryService constructs the service.
func NewSalaryService(salaries repository.SalaryRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher) *SalaryService {
	return &SalaryService{salaries: salaries, employees: employees, dispatcher: dispatcher}
}

// RecordSalary stores one salary per employee per month.
func (s *SalaryService) RecordSalary(ctx context.Context, actor domain.Identity, input SalaryInput) (*domain.Salary, error) {
	emp, err := s.employees.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "employee")
	}

	status := input.Status
	if status == "" {
		status = domain.SalaryStatusPaid
	}
	salary := &domain.Salary{
		EmployeeID:   emp.ID,
		DepartmentID: emp.DepartmentID,
		EmployeeName: emp.FullName(),
		EmployeeCode: emp.EmployeeCode,
		BasicSalary:  input.BasicSalary,
		Allowances:   input.Allowances,
		Deductions:   input.Deductions,
		PaymentDate:  input.PaymentDate,
		Status:       status,
	}
	if err := validateSalary(salary); err != nil {
		return nil, err
	}
	salary.Recalculate()

	if err := s.ensurePeriodFree(ctx, salary); err != nil {
		return nil, err
	}
	if err := s.salaries.Create(ctx, salary); err != nil {
		return nil, periodConflict(err, salary)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventSalaryRecorded, emp.ID, actorOf(actor), events.SalaryRecordedPayload{
			SalaryID:  salary.ID,
			Month:     salary.Month,
			Year:      salary.Year,
			NetSalary: salary.NetSalary,
			Status:    salary.Status,
		}))
	}
	return salary, nil
}

// ListSalaries returns all records, latest payment first.
func (s *SalaryService) ListSalaries(ctx context.Context) ([]domain.Salary, error) {
	salaries, err := s.salaries.List(ctx, repository.SalaryFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return salaries, nil
}

// EmployeeHistory returns one employee's salaries. An employee may only read
// their own history; administrators may read anyone's.
func (s *SalaryService) EmployeeHistory(ctx context.Context, actor domain.Identity, employeeID string) ([]domain.Salary, error) {
	if actor.Role() == domain.RoleEmployee && actor.ID() != employeeID {
		return nil, apperrors.NewForbidden("cannot view another employee's salary")
	}
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, apperrors.NotFoundAs(err, "employee")
	}
	salaries, err := s.salaries.List(ctx, repository.SalaryFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return salaries, nil
}

// GetSalary fetches a record.
func (s *SalaryService) GetSalary(ctx context.Context, id string) (*domain.Salary, error) {
	salary, err := s.salaries.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "salary")
	}
	return salary, nil
}

// UpdateSalary merges input and recomputes the totals.
func (s *SalaryService) UpdateSalary(ctx context.Context, id string, input SalaryUpdateInput) (*domain.Salary, error) {
	salary, err := s.GetSalary(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.BasicSalary != nil {
		salary.BasicSalary = *input.BasicSalary
	}
	if input.Allowances != nil {
		salary.Allowances = *input.Allowances
	}
	if input.Deductions != nil {
		salary.Deductions = *input.Deductions
	}
	if input.PaymentDate != nil {
		salary.PaymentDate = *input.PaymentDate
	}
	if input.Status != nil {
		salary.Status = *input.Status
	}
	if err := validateSalary(salary); err != nil {
		return nil, err
	}
	salary.Recalculate()

	if err := s.ensurePeriodFree(ctx, salary); err != nil {
		return nil, err
	}
	if err := s.salaries.Update(ctx, salary); err != nil {
		return nil, periodConflict(err, salary)
	}
	return salary, nil
}

// DeleteSalary removes a record.
func (s *SalaryService) DeleteSalary(ctx context.Context, id string) error {
	if err := s.salaries.Delete(ctx, id); err != nil {
		return apperrors.NotFoundAs(err, "salary")
	}
	return nil
}

func (s *SalaryService) ensurePeriodFree(ctx context.Context, salary *domain.Salary) error {
	existing, err := s.salaries.GetForPeriod(ctx, salary.EmployeeID, salary.Month, salary.Year)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return apperrors.MapError(err)
	case existing.ID == salary.ID:
		return nil
	default:
		return apperrors.NewConflict("salary already recorded for this period", map[string]any{
			"month": salary.Month,
			"year":  salary.Year,
		})
	}
}

func validateSalary(salary *domain.Salary) error {
	if salary.BasicSalary <= 0 {
		return apperrors.NewValidationError("basicSalary must be greater than zero", nil)
	}
	if salary.PaymentDate.IsZero() {
		return apperrors.NewValidationError("paymentDate is required", nil)
	}
	if !domain.ValidSalaryStatus(salary.Status) {
		return apperrors.NewValidationError("invalid salary status", map[string]any{"status": salary.Status})
	}
	return nil
}

func periodConflict(err error, salary *domain.Salary) error {
	mapped := apperrors.ToDomainError(err)
	if mapped.Code == apperrors.CodeConflict {
		return apperrors.NewConflict("salary already recorded for this period", map[string]any{
			"month": salary.Month,
			"year":  salary.Year,
		})
	}
	if mapped.Code == apperrors.CodeNotFound {
		return apperrors.NewNotFound("salary", nil)
	}
	return mapped
}

package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// DashboardService aggregates the admin overview.
type DashboardService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	salaries    repository.SalaryRepository
	leaves      repository.LeaveRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(employees repository.EmployeeRepository, departments repository.DepartmentRepository, salaries repository.SalaryRepository, leaves repository.LeaveRepository) *DashboardService {
	return &DashboardService{
		employees:   employees,
		departments: departments,
		salaries:    salaries,
		leaves:      leaves,
	}
}

// Summary counts employees and departments, sums paid salaries and tallies
// leave requests by status.
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var (
		summary domain.DashboardSummary
		err     error
	)
	if summary.EmployeeCount, err = s.employees.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.DepartmentCount, err = s.departments.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.TotalPayroll, err = s.salaries.TotalPaid(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if summary.LeaveStats, err = s.leaves.Stats(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &summary, nil
}

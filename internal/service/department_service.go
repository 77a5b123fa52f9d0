package service

import (
	"context"
	"strings"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// DepartmentService manages organizational units.
type DepartmentService struct {
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, employees repository.EmployeeRepository) *DepartmentService {
	return &DepartmentService{departments: departments, employees: employees}
}

// CreateDepartment creates a new department.
func (s *DepartmentService) CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("department name is required", nil)
	}
	dept := &domain.Department{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// ListDepartments returns all departments, newest first.
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// GetDepartment fetches a department.
func (s *DepartmentService) GetDepartment(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "department")
	}
	return dept, nil
}

// UpdateDepartment modifies department metadata. Nil fields are kept.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, name, description *string) (*domain.Department, error) {
	dept, err := s.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("department name is required", nil)
		}
		dept.Name = trimmed
	}
	if description != nil {
		dept.Description = strings.TrimSpace(*description)
	}
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.NotFoundAs(err, "department")
	}
	return dept, nil
}

// DeleteDepartment removes a department that no employee belongs to.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.GetDepartment(ctx, id); err != nil {
		return err
	}
	members, err := s.employees.List(ctx, repository.EmployeeFilter{DepartmentID: &id})
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(members) > 0 {
		return apperrors.NewConflict("department still has employees", map[string]any{"employees": len(members)})
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		return apperrors.NotFoundAs(err, "department")
	}
	return nil
}

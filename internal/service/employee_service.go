package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeeService manages employee records in the employee store.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	identities  *repository.IdentityStore
	dispatcher  events.Dispatcher
	bcryptCost  int
	logger      *zap.Logger
}

// EmployeeDependencies bundles repositories for the employee service.
type EmployeeDependencies struct {
	AdminRepo      repository.AdminRepository
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// EmployeeCreateInput describes a new employee.
type EmployeeCreateInput struct {
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	Gender       domain.Gender
	DateOfBirth  time.Time
	Salary       float64
	DepartmentID string
	Designation  string
	Password     string
}

// EmployeeUpdateInput carries the fields to change; nil fields are kept.
type EmployeeUpdateInput struct {
	EmployeeCode *string
	FirstName    *string
	LastName     *string
	Email        *string
	Gender       *domain.Gender
	DateOfBirth  *time.Time
	Salary       *float64
	DepartmentID *string
	Designation  *string
	Password     *string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(cfg config.Config, deps EmployeeDependencies) *EmployeeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
		identities:  repository.NewIdentityStore(deps.AdminRepo, deps.EmployeeRepo),
		dispatcher:  deps.Dispatcher,
		bcryptCost:  cfg.Auth.BcryptCost,
		logger:      logger,
	}
}

// CreateEmployee adds an employee after checking the department and the
// uniqueness of the employee code and email.
func (s *EmployeeService) CreateEmployee(ctx context.Context, actor domain.Identity, input EmployeeCreateInput) (*domain.Employee, error) {
	if input.Salary < 0 {
		return nil, apperrors.NewValidationError("salary must not be negative", nil)
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password is required", nil)
	}
	dept, err := s.requireDepartment(ctx, input.DepartmentID)
	if err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		EmployeeCode: strings.TrimSpace(input.EmployeeCode),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        normalizeEmail(input.Email),
		Gender:       input.Gender,
		DateOfBirth:  input.DateOfBirth,
		Salary:       input.Salary,
		DepartmentID: dept.ID,
		Designation:  strings.TrimSpace(input.Designation),
	}
	if err := s.checkUnique(ctx, emp, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	emp.PasswordHash = hash

	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	emp.DepartmentName = dept.Name

	s.publish(ctx, events.New(events.EventEmployeeCreated, emp.ID, actorOf(actor), events.EmployeeCreatedPayload{
		EmployeeCode: emp.EmployeeCode,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
	}))
	return emp, nil
}

// ListEmployees returns every employee, newest first.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	emps, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return emps, nil
}

// ListByDepartment returns the members of a department ordered by first name.
func (s *EmployeeService) ListByDepartment(ctx context.Context, departmentID string) ([]domain.Employee, error) {
	if _, err := s.requireDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	emps, err := s.employees.List(ctx, repository.EmployeeFilter{DepartmentID: &departmentID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return emps, nil
}

// GetEmployee fetches an employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "employee")
	}
	return emp, nil
}

// UpdateEmployee merges input into the stored record.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, input EmployeeUpdateInput) (*domain.Employee, error) {
	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.EmployeeCode != nil {
		emp.EmployeeCode = strings.TrimSpace(*input.EmployeeCode)
	}
	if input.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		emp.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		emp.Email = normalizeEmail(*input.Email)
	}
	if input.Gender != nil {
		emp.Gender = *input.Gender
	}
	if input.DateOfBirth != nil {
		emp.DateOfBirth = *input.DateOfBirth
	}
	if input.Salary != nil {
		if *input.Salary < 0 {
			return nil, apperrors.NewValidationError("salary must not be negative", nil)
		}
		emp.Salary = *input.Salary
	}
	if input.DepartmentID != nil && *input.DepartmentID != emp.DepartmentID {
		dept, err := s.requireDepartment(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		emp.DepartmentID = dept.ID
		emp.DepartmentName = dept.Name
	}
	if input.Designation != nil {
		emp.Designation = strings.TrimSpace(*input.Designation)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		emp.PasswordHash = hash
	}

	if err := s.checkUnique(ctx, emp, emp.ID); err != nil {
		return nil, err
	}
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, apperrors.NotFoundAs(err, "employee")
	}
	return emp, nil
}

// DeleteEmployee removes an employee; their salary, attendance and leave
// rows go with them.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return apperrors.NotFoundAs(err, "employee")
	}
	s.logger.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

func (s *EmployeeService) requireDepartment(ctx context.Context, id string) (*domain.Department, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("department is required", nil)
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "department")
	}
	return dept, nil
}

// checkUnique rejects a code or email held by another employee, and an email
// held by an administrator.
func (s *EmployeeService) checkUnique(ctx context.Context, emp *domain.Employee, excludeID string) error {
	exists, err := s.employees.ExistsByCodeOrEmail(ctx, emp.EmployeeCode, emp.Email, excludeID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if exists {
		return apperrors.NewConflict("employee with this employeeId or email already exists", map[string]any{
			"employeeId": emp.EmployeeCode,
			"email":      emp.Email,
		})
	}
	taken, err := s.identities.EmailTaken(ctx, emp.Email, excludeID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if taken {
		return apperrors.NewConflict("email already in use", map[string]any{"email": emp.Email})
	}
	return nil
}

func (s *EmployeeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(identity domain.Identity) events.Actor {
	return events.Actor{ID: identity.ID(), Role: identity.Role()}
}

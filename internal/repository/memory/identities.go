package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

type adminRepository struct {
	s *Store
}

func (r *adminRepository) Create(_ context.Context, admin *domain.Administrator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.admins {
		if sameEmail(existing.Email, admin.Email) {
			return uniqueViolation("administrators_email_key")
		}
	}
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.Email = strings.ToLower(admin.Email)
	admin.CreatedAt = r.s.now()
	admin.UpdatedAt = admin.CreatedAt
	r.s.admins[admin.ID] = *admin
	return nil
}

func (r *adminRepository) Update(_ context.Context, admin *domain.Administrator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.admins[admin.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.s.admins {
		if id != admin.ID && sameEmail(existing.Email, admin.Email) {
			return uniqueViolation("administrators_email_key")
		}
	}
	admin.Email = strings.ToLower(admin.Email)
	admin.UpdatedAt = r.s.now()
	r.s.admins[admin.ID] = *admin
	return nil
}

func (r *adminRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.admins[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.admins, id)
	return nil
}

func (r *adminRepository) GetByID(_ context.Context, id string) (*domain.Administrator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	admin, ok := r.s.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(_ context.Context, email string) (*domain.Administrator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, admin := range r.s.admins {
		if sameEmail(admin.Email, email) {
			return &admin, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) Create(_ context.Context, emp *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(emp); err != nil {
		return err
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.Email = strings.ToLower(emp.Email)
	emp.CreatedAt = r.s.now()
	emp.UpdatedAt = emp.CreatedAt
	emp.DepartmentName = r.s.departmentName(emp.DepartmentID)
	r.s.employees[emp.ID] = *emp
	return nil
}

func (r *employeeRepository) Update(_ context.Context, emp *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	if err := r.checkUnique(emp); err != nil {
		return err
	}
	emp.Email = strings.ToLower(emp.Email)
	emp.UpdatedAt = r.s.now()
	emp.DepartmentName = r.s.departmentName(emp.DepartmentID)
	r.s.employees[emp.ID] = *emp
	return nil
}

func (r *employeeRepository) checkUnique(emp *domain.Employee) error {
	for id, existing := range r.s.employees {
		if id == emp.ID {
			continue
		}
		if sameEmail(existing.Email, emp.Email) {
			return uniqueViolation("employees_email_key")
		}
		if existing.EmployeeCode == emp.EmployeeCode {
			return uniqueViolation("employees_employee_code_key")
		}
	}
	return nil
}

func (r *employeeRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.employees, id)
	r.s.cascadeEmployee(id)
	return nil
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	emp, ok := r.s.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	emp.DepartmentName = r.s.departmentName(emp.DepartmentID)
	return &emp, nil
}

func (r *employeeRepository) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	return r.find(func(e domain.Employee) bool { return sameEmail(e.Email, email) })
}

func (r *employeeRepository) GetByCode(_ context.Context, code string) (*domain.Employee, error) {
	return r.find(func(e domain.Employee) bool { return e.EmployeeCode == code })
}

func (r *employeeRepository) find(match func(domain.Employee) bool) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, emp := range r.s.employees {
		if match(emp) {
			emp.DepartmentName = r.s.departmentName(emp.DepartmentID)
			return &emp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *employeeRepository) ExistsByCodeOrEmail(_ context.Context, code, email, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for id, emp := range r.s.employees {
		if excludeID != "" && id == excludeID {
			continue
		}
		if emp.EmployeeCode == code || sameEmail(emp.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *employeeRepository) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []domain.Employee
	for _, emp := range r.s.employees {
		if filter.DepartmentID != nil && emp.DepartmentID != *filter.DepartmentID {
			continue
		}
		emp.DepartmentName = r.s.departmentName(emp.DepartmentID)
		result = append(result, emp)
	}
	if filter.DepartmentID != nil {
		sort.SliceStable(result, func(i, j int) bool { return result[i].FirstName < result[j].FirstName })
	} else {
		sortByCreatedDesc(result, func(e domain.Employee) time.Time { return e.CreatedAt })
	}
	return result, nil
}

func (r *employeeRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.employees), nil
}

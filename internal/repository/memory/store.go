// Package memory implements the repository interfaces in process memory. It
// backs STORAGE_DRIVER=memory and the HTTP tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// Store holds every collection behind one lock.
type Store struct {
	mu          sync.RWMutex
	admins      map[string]domain.Administrator
	employees   map[string]domain.Employee
	departments map[string]domain.Department
	salaries    map[string]domain.Salary
	attendance  map[string][]domain.AttendanceRecord
	leaves      map[string]domain.Leave
	now         func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		admins:      make(map[string]domain.Administrator),
		employees:   make(map[string]domain.Employee),
		departments: make(map[string]domain.Department),
		salaries:    make(map[string]domain.Salary),
		attendance:  make(map[string][]domain.AttendanceRecord),
		leaves:      make(map[string]domain.Leave),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Admins() repository.AdminRepository           { return &adminRepository{s} }
func (s *Store) Employees() repository.EmployeeRepository     { return &employeeRepository{s} }
func (s *Store) Departments() repository.DepartmentRepository { return &departmentRepository{s} }
func (s *Store) Salaries() repository.SalaryRepository        { return &salaryRepository{s} }
func (s *Store) Attendance() repository.AttendanceRepository  { return &attendanceRepository{s} }
func (s *Store) Leaves() repository.LeaveRepository           { return &leaveRepository{s} }

// uniqueViolation mirrors the error Postgres returns for a duplicate key.
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint", ConstraintName: constraint}
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (s *Store) departmentName(id string) string {
	if dept, ok := s.departments[id]; ok {
		return dept.Name
	}
	return ""
}

func (s *Store) employeeName(id string) (string, string) {
	if emp, ok := s.employees[id]; ok {
		return emp.FullName(), emp.EmployeeCode
	}
	return "", ""
}

// cascadeEmployee drops the rows that reference an employee, as the
// ON DELETE CASCADE foreign keys do in Postgres. Callers hold the write lock.
func (s *Store) cascadeEmployee(id string) {
	for key, salary := range s.salaries {
		if salary.EmployeeID == id {
			delete(s.salaries, key)
		}
	}
	for key, leave := range s.leaves {
		if leave.EmployeeID == id {
			delete(s.leaves, key)
		}
	}
	for date, records := range s.attendance {
		kept := records[:0]
		for _, rec := range records {
			if rec.EmployeeID != id {
				kept = append(kept, rec)
			}
		}
		s.attendance[date] = kept
	}
}

func sortByCreatedDesc[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}

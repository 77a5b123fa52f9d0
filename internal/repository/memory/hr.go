package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

type departmentRepository struct {
	s *Store
}

func (r *departmentRepository) Create(_ context.Context, dept *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if dept.ID == "" {
		dept.ID = uuid.NewString()
	}
	dept.CreatedAt = r.s.now()
	dept.UpdatedAt = dept.CreatedAt
	r.s.departments[dept.ID] = *dept
	return nil
}

func (r *departmentRepository) Update(_ context.Context, dept *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.departments[dept.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	dept.CreatedAt = existing.CreatedAt
	dept.UpdatedAt = r.s.now()
	r.s.departments[dept.ID] = *dept
	return nil
}

func (r *departmentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.departments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.departments, id)
	return nil
}

func (r *departmentRepository) GetByID(_ context.Context, id string) (*domain.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	dept, ok := r.s.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (r *departmentRepository) List(_ context.Context) ([]domain.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]domain.Department, 0, len(r.s.departments))
	for _, dept := range r.s.departments {
		result = append(result, dept)
	}
	sortByCreatedDesc(result, func(d domain.Department) time.Time { return d.CreatedAt })
	return result, nil
}

func (r *departmentRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.departments), nil
}

type salaryRepository struct {
	s *Store
}

func (r *salaryRepository) Create(_ context.Context, salary *domain.Salary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.salaries {
		if existing.EmployeeID == salary.EmployeeID && existing.Month == salary.Month && existing.Year == salary.Year {
			return uniqueViolation("salaries_employee_period_key")
		}
	}
	if salary.ID == "" {
		salary.ID = uuid.NewString()
	}
	salary.CreatedAt = r.s.now()
	r.s.salaries[salary.ID] = *salary
	return nil
}

func (r *salaryRepository) Update(_ context.Context, salary *domain.Salary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.salaries[salary.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.salaries[salary.ID] = *salary
	return nil
}

func (r *salaryRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.salaries[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.salaries, id)
	return nil
}

func (r *salaryRepository) GetByID(_ context.Context, id string) (*domain.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	salary, ok := r.s.salaries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	salary.EmployeeName, salary.EmployeeCode = r.s.employeeName(salary.EmployeeID)
	return &salary, nil
}

func (r *salaryRepository) GetForPeriod(_ context.Context, employeeID string, month, year int) (*domain.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, salary := range r.s.salaries {
		if salary.EmployeeID == employeeID && salary.Month == month && salary.Year == year {
			salary.EmployeeName, salary.EmployeeCode = r.s.employeeName(salary.EmployeeID)
			return &salary, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *salaryRepository) List(_ context.Context, filter repository.SalaryFilter) ([]domain.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []domain.Salary
	for _, salary := range r.s.salaries {
		if filter.EmployeeID != nil && salary.EmployeeID != *filter.EmployeeID {
			continue
		}
		salary.EmployeeName, salary.EmployeeCode = r.s.employeeName(salary.EmployeeID)
		result = append(result, salary)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].PaymentDate.After(result[j].PaymentDate) })
	return result, nil
}

func (r *salaryRepository) TotalPaid(_ context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total float64
	for _, salary := range r.s.salaries {
		if salary.Status == domain.SalaryStatusPaid {
			total += salary.NetSalary
		}
	}
	return total, nil
}

type attendanceRepository struct {
	s *Store
}

func (r *attendanceRepository) ReplaceSheet(_ context.Context, sheet *domain.AttendanceSheet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records := make([]domain.AttendanceRecord, len(sheet.Records))
	copy(records, sheet.Records)
	r.s.attendance[sheet.Date] = records
	return nil
}

func (r *attendanceRepository) GetSheet(_ context.Context, date string) (*domain.AttendanceSheet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records, ok := r.s.attendance[date]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	sheet := &domain.AttendanceSheet{Date: date, Records: make([]domain.AttendanceRecord, 0, len(records))}
	for _, rec := range records {
		if emp, ok := r.s.employees[rec.EmployeeID]; ok {
			rec.EmployeeCode = emp.EmployeeCode
			rec.FirstName = emp.FirstName
			rec.LastName = emp.LastName
			rec.DepartmentID = emp.DepartmentID
		}
		sheet.Records = append(sheet.Records, rec)
	}
	return sheet, nil
}

func (r *attendanceRepository) Report(_ context.Context) ([]domain.AttendanceDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]domain.AttendanceDay, 0, len(r.s.attendance))
	for date, records := range r.s.attendance {
		day := domain.AttendanceDay{Date: date}
		for _, rec := range records {
			switch rec.Status {
			case domain.AttendancePresent:
				day.Present++
			case domain.AttendanceAbsent:
				day.Absent++
			}
		}
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (r *attendanceRepository) ListForEmployee(_ context.Context, employeeID, from, to string) ([]domain.EmployeeAttendanceDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []domain.EmployeeAttendanceDay{}
	for date, records := range r.s.attendance {
		if date < from || date > to {
			continue
		}
		for _, rec := range records {
			if rec.EmployeeID == employeeID {
				result = append(result, domain.EmployeeAttendanceDay{Date: date, Status: rec.Status})
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

type leaveRepository struct {
	s *Store
}

func (r *leaveRepository) Create(_ context.Context, leave *domain.Leave) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	leave.CreatedAt = r.s.now()
	leave.UpdatedAt = leave.CreatedAt
	r.s.leaves[leave.ID] = *leave
	return nil
}

func (r *leaveRepository) GetByID(_ context.Context, id string) (*domain.Leave, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	leave, ok := r.s.leaves[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	leave.EmployeeName, _ = r.s.employeeName(leave.EmployeeID)
	return &leave, nil
}

func (r *leaveRepository) List(_ context.Context, filter repository.LeaveFilter) ([]domain.Leave, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []domain.Leave
	for _, leave := range r.s.leaves {
		if filter.EmployeeID != nil && leave.EmployeeID != *filter.EmployeeID {
			continue
		}
		leave.EmployeeName, _ = r.s.employeeName(leave.EmployeeID)
		result = append(result, leave)
	}
	sortByCreatedDesc(result, func(l domain.Leave) time.Time { return l.CreatedAt })
	return result, nil
}

func (r *leaveRepository) UpdateStatus(_ context.Context, id string, status domain.LeaveStatus) (*domain.Leave, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	leave, ok := r.s.leaves[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	leave.Status = status
	leave.UpdatedAt = r.s.now()
	r.s.leaves[id] = leave
	leave.EmployeeName, _ = r.s.employeeName(leave.EmployeeID)
	return &leave, nil
}

func (r *leaveRepository) Stats(_ context.Context) (domain.LeaveStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := domain.LeaveStats{Total: len(r.s.leaves)}
	for _, leave := range r.s.leaves {
		switch leave.Status {
		case domain.LeaveStatusApproved:
			stats.Approved++
		case domain.LeaveStatusPending:
			stats.Pending++
		case domain.LeaveStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

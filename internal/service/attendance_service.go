package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// AttendanceService marks and reports daily attendance.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	employees  repository.EmployeeRepository
	now        func() time.Time
}

// EmployeeAttendance is an employee's month with summary stats.
type EmployeeAttendance struct {
	Month string                         `json:"month"`
	Days  []domain.EmployeeAttendanceDay `json:"days"`
	Stats domain.AttendanceStats         `json:"stats"`
}

// NewAttendanceService constructs the service.
func NewAttendanceService(attendance repository.AttendanceRepository, employees repository.EmployeeRepository) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		employees:  employees,
		now:        time.Now,
	}
}

// MarkAttendance replaces the sheet of the given date.
func (s *AttendanceService) MarkAttendance(ctx context.Context, date string, records []domain.AttendanceRecord) (*domain.AttendanceSheet, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}
	if len(records) == 0 {
		return nil, apperrors.NewValidationError("at least one attendance record is required", nil)
	}

	seen := make(map[string]struct{}, len(records))
	cleaned := make([]domain.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status != domain.AttendancePresent && rec.Status != domain.AttendanceAbsent {
			return nil, apperrors.NewValidationError("status must be present or absent", map[string]any{"employee": rec.EmployeeID})
		}
		if _, dup := seen[rec.EmployeeID]; dup {
			return nil, apperrors.NewValidationError("employee listed twice", map[string]any{"employee": rec.EmployeeID})
		}
		if _, err := s.employees.GetByID(ctx, rec.EmployeeID); err != nil {
			return nil, apperrors.NotFoundAs(err, "employee")
		}
		seen[rec.EmployeeID] = struct{}{}
		cleaned = append(cleaned, domain.AttendanceRecord{EmployeeID: rec.EmployeeID, Status: rec.Status})
	}

	sheet := &domain.AttendanceSheet{Date: date, Records: cleaned}
	if err := s.attendance.ReplaceSheet(ctx, sheet); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.GetSheet(ctx, date)
}

// GetSheet returns the attendance of a date. A date never marked yields an
// empty sheet.
func (s *AttendanceService) GetSheet(ctx context.Context, date string) (*domain.AttendanceSheet, error) {
	if date == "" {
		date = s.now().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": date})
	}
	sheet, err := s.attendance.GetSheet(ctx, date)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.AttendanceSheet{Date: date, Records: []domain.AttendanceRecord{}}, nil
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sheet, nil
}

// Report counts present and absent employees per date.
func (s *AttendanceService) Report(ctx context.Context) ([]domain.AttendanceDay, error) {
	days, err := s.attendance.Report(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return days, nil
}

// EmployeeMonth returns an employee's days in month (YYYY-MM, default current
// month) and the derived stats.
func (s *AttendanceService) EmployeeMonth(ctx context.Context, employeeID, month string) (*EmployeeAttendance, error) {
	if month == "" {
		month = s.now().Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperrors.NewValidationError("month must be YYYY-MM", map[string]any{"month": month})
	}
	end := start.AddDate(0, 1, -1)

	days, err := s.attendance.ListForEmployee(ctx, employeeID, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if days == nil {
		days = []domain.EmployeeAttendanceDay{}
	}
	return &EmployeeAttendance{
		Month: month,
		Days:  days,
		Stats: domain.SummarizeAttendance(days),
	}, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// AttendanceRepository stores one sheet per date.
type AttendanceRepository interface {
	// ReplaceSheet drops any existing sheet for the date and stores the new one.
	ReplaceSheet(ctx context.Context, sheet *domain.AttendanceSheet) error
	GetSheet(ctx context.Context, date string) (*domain.AttendanceSheet, error)
	Report(ctx context.Context) ([]domain.AttendanceDay, error)
	// ListForEmployee returns the employee's status for sheets dated within [from, to].
	ListForEmployee(ctx context.Context, employeeID, from, to string) ([]domain.EmployeeAttendanceDay, error)
}

type attendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository builds the repository.
func NewAttendanceRepository(pool *pgxpool.Pool) AttendanceRepository {
	return &attendanceRepository{pool: pool}
}

func (r *attendanceRepository) ReplaceSheet(ctx context.Context, sheet *domain.AttendanceSheet) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM attendance_days WHERE day=$1`, sheet.Date); err != nil {
		return fmt.Errorf("delete attendance %s: %w", sheet.Date, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO attendance_days (day) VALUES ($1)`, sheet.Date); err != nil {
		return fmt.Errorf("insert attendance %s: %w", sheet.Date, err)
	}

	batch := &pgx.Batch{}
	for _, rec := range sheet.Records {
		batch.Queue(`INSERT INTO attendance_records (day, employee_id, status) VALUES ($1,$2,$3)`,
			sheet.Date, rec.EmployeeID, rec.Status)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert attendance records: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *attendanceRepository) GetSheet(ctx context.Context, date string) (*domain.AttendanceSheet, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendance_days WHERE day=$1)`, date).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, pgx.ErrNoRows
	}

	const query = `
        SELECT ar.employee_id, COALESCE(e.employee_code, ''), COALESCE(e.first_name, ''),
               COALESCE(e.last_name, ''), COALESCE(e.department_id::text, ''), ar.status
        FROM attendance_records ar
        LEFT JOIN employees e ON e.id = ar.employee_id
        WHERE ar.day=$1
        ORDER BY e.first_name ASC`
	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheet := &domain.AttendanceSheet{Date: date, Records: []domain.AttendanceRecord{}}
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(&rec.EmployeeID, &rec.EmployeeCode, &rec.FirstName, &rec.LastName, &rec.DepartmentID, &rec.Status); err != nil {
			return nil, err
		}
		sheet.Records = append(sheet.Records, rec)
	}
	return sheet, rows.Err()
}

func (r *attendanceRepository) Report(ctx context.Context) ([]domain.AttendanceDay, error) {
	const query = `
        SELECT d.day,
               COUNT(*) FILTER (WHERE ar.status = 'present'),
               COUNT(*) FILTER (WHERE ar.status = 'absent')
        FROM attendance_days d
        LEFT JOIN attendance_records ar ON ar.day = d.day
        GROUP BY d.day
        ORDER BY d.day ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.AttendanceDay{}
	for rows.Next() {
		var day domain.AttendanceDay
		if err := rows.Scan(&day.Date, &day.Present, &day.Absent); err != nil {
			return nil, err
		}
		result = append(result, day)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) ListForEmployee(ctx context.Context, employeeID, from, to string) ([]domain.EmployeeAttendanceDay, error) {
	const query = `
        SELECT day, status FROM attendance_records
        WHERE employee_id=$1 AND day >= $2 AND day <= $3
        ORDER BY day ASC`
	rows, err := r.pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.EmployeeAttendanceDay{}
	for rows.Next() {
		var day domain.EmployeeAttendanceDay
		if err := rows.Scan(&day.Date, &day.Status); err != nil {
			return nil, err
		}
		result = append(result, day)
	}
	return result, rows.Err()
}

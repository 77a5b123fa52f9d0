package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// SalaryRepository manages salary records.
type SalaryRepository interface {
	Create(ctx context.Context, salary *domain.Salary) error
	Update(ctx context.Context, salary *domain.Salary) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Salary, error)
	// GetForPeriod returns pgx.ErrNoRows when the employee has no record for the month.
	GetForPeriod(ctx context.Context, employeeID string, month, year int) (*domain.Salary, error)
	List(ctx context.Context, filter SalaryFilter) ([]domain.Salary, error)
	TotalPaid(ctx context.Context) (float64, error)
}

// SalaryFilter narrows salary listings.
type SalaryFilter struct {
	EmployeeID *string
}

type salaryRepository struct {
	pool *pgxpool.Pool
}

// NewSalaryRepository builds the repository.
func NewSalaryRepository(pool *pgxpool.Pool) SalaryRepository {
	return &salaryRepository{pool: pool}
}

const salarySelect = `
        SELECT s.id, s.employee_id, s.department_id,
               COALESCE(e.first_name || ' ' || e.last_name, ''), COALESCE(e.employee_code, ''),
               s.basic_salary, s.hra, s.da, s.medical, s.ta, s.allowances_total,
               s.pf, s.tax, s.insurance, s.deductions_total, s.net_salary,
               s.payment_date, s.month, s.year, s.status, s.created_at
        FROM salaries s
        LEFT JOIN employees e ON e.id = s.employee_id`

func (r *salaryRepository) Create(ctx context.Context, s *domain.Salary) error {
	const query = `
        INSERT INTO salaries (id, employee_id, department_id, basic_salary, hra, da, medical, ta, allowances_total,
                              pf, tax, insurance, deductions_total, net_salary, payment_date, month, year, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
        RETURNING created_at`
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.DepartmentID,
		s.BasicSalary,
		s.Allowances.HRA,
		s.Allowances.DA,
		s.Allowances.Medical,
		s.Allowances.TA,
		s.Allowances.Total,
		s.Deductions.PF,
		s.Deductions.Tax,
		s.Deductions.Insurance,
		s.Deductions.Total,
		s.NetSalary,
		s.PaymentDate,
		s.Month,
		s.Year,
		s.Status,
	).Scan(&s.CreatedAt)
}

func (r *salaryRepository) Update(ctx context.Context, s *domain.Salary) error {
	const query = `
        UPDATE salaries
        SET basic_salary=$1, hra=$2, da=$3, medical=$4, ta=$5, allowances_total=$6,
            pf=$7, tax=$8, insurance=$9, deductions_total=$10, net_salary=$11, status=$12
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		s.BasicSalary,
		s.Allowances.HRA,
		s.Allowances.DA,
		s.Allowances.Medical,
		s.Allowances.TA,
		s.Allowances.Total,
		s.Deductions.PF,
		s.Deductions.Tax,
		s.Deductions.Insurance,
		s.Deductions.Total,
		s.NetSalary,
		s.Status,
		s.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *salaryRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM salaries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (*domain.Salary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	return scanSalary(r.pool.QueryRow(ctx, salarySelect+` WHERE s.id=$1`, id))
}

func (r *salaryRepository) GetForPeriod(ctx context.Context, employeeID string, month, year int) (*domain.Salary, error) {
	return scanSalary(r.pool.QueryRow(ctx,
		salarySelect+` WHERE s.employee_id=$1 AND s.month=$2 AND s.year=$3`,
		employeeID, month, year))
}

func (r *salaryRepository) List(ctx context.Context, filter SalaryFilter) ([]domain.Salary, error) {
	query := salarySelect
	args := []any{}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" WHERE s.employee_id=$%d", len(args))
	}
	query += " ORDER BY s.payment_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *salaryRepository) TotalPaid(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(net_salary), 0) FROM salaries WHERE status=$1`,
		domain.SalaryStatusPaid,
	).Scan(&total)
	return total, err
}

func scanSalary(row pgx.Row) (*domain.Salary, error) {
	var s domain.Salary
	if err := row.Scan(
		&s.ID,
		&s.EmployeeID,
		&s.DepartmentID,
		&s.EmployeeName,
		&s.EmployeeCode,
		&s.BasicSalary,
		&s.Allowances.HRA,
		&s.Allowances.DA,
		&s.Allowances.Medical,
		&s.Allowances.TA,
		&s.Allowances.Total,
		&s.Deductions.PF,
		&s.Deductions.Tax,
		&s.Deductions.Insurance,
		&s.Deductions.Total,
		&s.NetSalary,
		&s.PaymentDate,
		&s.Month,
		&s.Year,
		&s.Status,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

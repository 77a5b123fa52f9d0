package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRepository handles persistence for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByCode(ctx context.Context, code string) (*domain.Employee, error)
	// ExistsByCodeOrEmail ignores the record with excludeID when set.
	ExistsByCodeOrEmail(ctx context.Context, code, email, excludeID string) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	Count(ctx context.Context) (int, error)
}

// EmployeeFilter defines query params for employee listing.
type EmployeeFilter struct {
	DepartmentID *string
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeSelect = `
        SELECT e.id, e.employee_code, e.first_name, e.last_name, e.email, e.gender, e.date_of_birth,
               e.salary, e.department_id, COALESCE(d.name, ''), e.designation, e.password_hash,
               e.created_at, e.updated_at
        FROM employees e
        LEFT JOIN departments d ON d.id = e.department_id`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (id, employee_code, first_name, last_name, email, gender, date_of_birth,
                               salary, department_id, designation, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at, updated_at`

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	emp.Email = strings.ToLower(emp.Email)
	return r.pool.QueryRow(ctx, query,
		emp.ID,
		emp.EmployeeCode,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Gender,
		emp.DateOfBirth,
		emp.Salary,
		emp.DepartmentID,
		emp.Designation,
		emp.PasswordHash,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees
        SET employee_code=$1, first_name=$2, last_name=$3, email=$4, gender=$5, date_of_birth=$6,
            salary=$7, department_id=$8, designation=$9, password_hash=$10, updated_at=NOW()
        WHERE id=$11
        RETURNING updated_at`

	emp.Email = strings.ToLower(emp.Email)
	return r.pool.QueryRow(ctx, query,
		emp.EmployeeCode,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Gender,
		emp.DateOfBirth,
		emp.Salary,
		emp.DepartmentID,
		emp.Designation,
		emp.PasswordHash,
		emp.ID,
	).Scan(&emp.UpdatedAt)
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	return r.getOne(ctx, employeeSelect+` WHERE e.id=$1`, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.email=$1`, strings.ToLower(email))
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*domain.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.employee_code=$1`, code)
}

func (r *employeeRepository) ExistsByCodeOrEmail(ctx context.Context, code, email, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM employees WHERE (employee_code=$1 OR email=$2)`
	args := []any{code, strings.ToLower(email)}
	if excludeID != "" {
		args = append(args, excludeID)
		query += fmt.Sprintf(" AND id<>$%d", len(args))
	}
	query += ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := employeeSelect
	args := []any{}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		query += fmt.Sprintf(" WHERE e.department_id=$%d ORDER BY e.first_name ASC", len(args))
	} else {
		query += " ORDER BY e.created_at DESC"
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return count, err
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	return scanEmployee(r.pool.QueryRow(ctx, query, arg))
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.EmployeeCode,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Gender,
		&emp.DateOfBirth,
		&emp.Salary,
		&emp.DepartmentID,
		&emp.DepartmentName,
		&emp.Designation,
		&emp.PasswordHash,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// LeaveRepository manages leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.Leave) error
	GetByID(ctx context.Context, id string) (*domain.Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]domain.Leave, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus) (*domain.Leave, error)
	Stats(ctx context.Context) (domain.LeaveStats, error)
}

// LeaveFilter narrows leave listings.
type LeaveFilter struct {
	EmployeeID *string
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository builds the repository.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

const leaveSelect = `
        SELECT l.id, l.employee_id, COALESCE(e.first_name || ' ' || e.last_name, ''),
               l.from_date, l.to_date, l.reason, l.leave_type, l.status, l.created_at, l.updated_at
        FROM leaves l
        LEFT JOIN employees e ON e.id = l.employee_id`

func (r *leaveRepository) Create(ctx context.Context, leave *domain.Leave) error {
	const query = `
        INSERT INTO leaves (id, employee_id, from_date, to_date, reason, leave_type, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`
	if leave.ID == "" {
		leave.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx, query,
		leave.ID,
		leave.EmployeeID,
		leave.FromDate,
		leave.ToDate,
		leave.Reason,
		leave.LeaveType,
		leave.Status,
	).Scan(&leave.CreatedAt, &leave.UpdatedAt)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	return scanLeave(r.pool.QueryRow(ctx, leaveSelect+` WHERE l.id=$1`, id))
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]domain.Leave, error) {
	query := leaveSelect
	args := []any{}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		query += fmt.Sprintf(" WHERE l.employee_id=$%d", len(args))
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Leave
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *leave)
	}
	return result, rows.Err()
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status domain.LeaveStatus) (*domain.Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE leaves SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r *leaveRepository) Stats(ctx context.Context) (domain.LeaveStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'approved'),
               COUNT(*) FILTER (WHERE status = 'pending'),
               COUNT(*) FILTER (WHERE status = 'rejected')
        FROM leaves`
	var stats domain.LeaveStats
	err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Approved, &stats.Pending, &stats.Rejected)
	return stats, err
}

func scanLeave(row pgx.Row) (*domain.Leave, error) {
	var leave domain.Leave
	if err := row.Scan(
		&leave.ID,
		&leave.EmployeeID,
		&leave.EmployeeName,
		&leave.FromDate,
		&leave.ToDate,
		&leave.Reason,
		&leave.LeaveType,
		&leave.Status,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &leave, nil
}

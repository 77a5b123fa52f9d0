package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// AdminRepository defines persistence access for administrators.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Administrator) error
	Update(ctx context.Context, admin *domain.Administrator) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Administrator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Administrator, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, name, email, password_hash, job_title, phone_number, created_at, updated_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Administrator) error {
	const query = `
        INSERT INTO administrators (id, name, email, password_hash, job_title, phone_number)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.Email = strings.ToLower(admin.Email)
	return r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.JobTitle,
		admin.PhoneNumber,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Administrator) error {
	const query = `
        UPDATE administrators SET name=$1, email=$2, password_hash=$3, job_title=$4, phone_number=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	admin.Email = strings.ToLower(admin.Email)
	return r.pool.QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.JobTitle,
		admin.PhoneNumber,
		admin.ID,
	).Scan(&admin.UpdatedAt)
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return pgx.ErrNoRows
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM administrators WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Administrator, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM administrators WHERE id=$1`, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	return r.getOne(ctx, `SELECT `+adminColumns+` FROM administrators WHERE email=$1`, strings.ToLower(email))
}

func (r *adminRepository) getOne(ctx context.Context, query string, arg any) (*domain.Administrator, error) {
	var admin domain.Administrator
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.JobTitle,
		&admin.PhoneNumber,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

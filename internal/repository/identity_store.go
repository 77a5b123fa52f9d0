package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
)

// IdentityStore resolves identities across the administrator and employee
// stores. The role of a returned identity is the store it was found in.
type IdentityStore struct {
	admins    AdminRepository
	employees EmployeeRepository
}

// NewIdentityStore combines both credential stores.
func NewIdentityStore(admins AdminRepository, employees EmployeeRepository) *IdentityStore {
	return &IdentityStore{admins: admins, employees: employees}
}

// FindByEmail checks administrators first, then employees. Returns
// pgx.ErrNoRows when neither store holds the email.
func (s *IdentityStore) FindByEmail(ctx context.Context, email string) (domain.Identity, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return domain.AdminIdentity(admin), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Identity{}, err
	}

	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.EmployeeIdentity(emp), nil
}

// FindByID loads the subject from the store that matches role only. An id
// that lives in the other store is treated as missing.
func (s *IdentityStore) FindByID(ctx context.Context, role domain.Role, id string) (domain.Identity, error) {
	switch role {
	case domain.RoleAdmin:
		admin, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return domain.Identity{}, err
		}
		return domain.AdminIdentity(admin), nil
	case domain.RoleEmployee:
		emp, err := s.employees.GetByID(ctx, id)
		if err != nil {
			return domain.Identity{}, err
		}
		return domain.EmployeeIdentity(emp), nil
	default:
		return domain.Identity{}, pgx.ErrNoRows
	}
}

// EmailTaken reports whether email belongs to any identity other than exceptID,
// in either store.
func (s *IdentityStore) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	switch {
	case err == nil && admin.ID != exceptID:
		return true, nil
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return false, err
	}

	emp, err := s.employees.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return emp.ID != exceptID, nil
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	default:
		return false, err
	}
}

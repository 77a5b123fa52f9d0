package repository_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/repository/memory"
)

func seedIdentities(t *testing.T) (*memory.Store, *domain.Administrator, *domain.Employee) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	admin := &domain.Administrator{Name: "Admin", Email: "admin@corp.test"}
	require.NoError(t, store.Admins().Create(ctx, admin))
	emp := &domain.Employee{EmployeeCode: "E-1", FirstName: "Ada", Email: "ada@corp.test"}
	require.NoError(t, store.Employees().Create(ctx, emp))
	return store, admin, emp
}

func TestIdentityStore_FindByEmail(t *testing.T) {
	store, admin, emp := seedIdentities(t)
	identities := repository.NewIdentityStore(store.Admins(), store.Employees())
	ctx := context.Background()

	got, err := identities.FindByEmail(ctx, "ADMIN@corp.test")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role())
	assert.Equal(t, admin.ID, got.ID())

	got, err = identities.FindByEmail(ctx, "ada@corp.test")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, got.Role())
	assert.Equal(t, emp.ID, got.ID())

	_, err = identities.FindByEmail(ctx, "nobody@corp.test")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestIdentityStore_FindByIDOnlySearchesRoleStore(t *testing.T) {
	store, admin, emp := seedIdentities(t)
	identities := repository.NewIdentityStore(store.Admins(), store.Employees())
	ctx := context.Background()

	got, err := identities.FindByID(ctx, domain.RoleAdmin, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role())

	_, err = identities.FindByID(ctx, domain.RoleAdmin, emp.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = identities.FindByID(ctx, domain.RoleEmployee, admin.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = identities.FindByID(ctx, domain.Role("root"), admin.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestIdentityStore_EmailTaken(t *testing.T) {
	store, admin, emp := seedIdentities(t)
	identities := repository.NewIdentityStore(store.Admins(), store.Employees())
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		exceptID string
		want     bool
	}{
		{"admin email from outside", "admin@corp.test", "", true},
		{"employee email from outside", "ada@corp.test", "", true},
		{"own admin email", "admin@corp.test", admin.ID, false},
		{"own employee email", "ada@corp.test", emp.ID, false},
		{"admin email for employee", "admin@corp.test", emp.ID, true},
		{"free email", "free@corp.test", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken, err := identities.EmailTaken(ctx, tt.email, tt.exceptID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taken)
		})
	}
}

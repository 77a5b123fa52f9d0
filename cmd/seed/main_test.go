package main

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository/memory"
)

func TestSeedAdmin_Idempotent(t *testing.T) {
	store := memory.New()
	admins := store.Admins()
	seed := config.SeedConfig{AdminName: "Admin", AdminEmail: "admin@gmail.com", AdminPassword: "admin"}

	created, err := seedAdmin(context.Background(), admins, store.Employees(), seed, 4)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seedAdmin(context.Background(), admins, store.Employees(), seed, 4)
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := admins.GetByEmail(context.Background(), "admin@gmail.com")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(admin.PasswordHash, "admin"))
}

func TestSeedAdmin_RefusesEmployeeEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	dept := &domain.Department{Name: "Ops"}
	require.NoError(t, store.Departments().Create(ctx, dept))
	require.NoError(t, store.Employees().Create(ctx, &domain.Employee{
		EmployeeCode: "E-1",
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@corp.test",
		Gender:       domain.GenderFemale,
		DepartmentID: dept.ID,
		Designation:  "Engineer",
		PasswordHash: "x",
	}))

	seed := config.SeedConfig{AdminName: "Admin", AdminEmail: "Grace@Corp.test", AdminPassword: "admin"}
	created, err := seedAdmin(ctx, store.Admins(), store.Employees(), seed, 4)
	require.Error(t, err)
	assert.False(t, created)

	_, err = store.Admins().GetByEmail(ctx, "grace@corp.test")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

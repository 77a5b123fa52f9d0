package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository/memory"
)

const testCost = 4

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store      *memory.Store
	cfg        config.Config
	tokens     *auth.TokenService
	dispatcher *recordingDispatcher
	admin      *domain.Administrator
	dept       *domain.Department
	employee   *domain.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	adminHash, err := auth.HashPassword("admin-pass", testCost)
	require.NoError(t, err)
	admin := &domain.Administrator{Name: "Admin", Email: "admin@corp.test", PasswordHash: adminHash}
	require.NoError(t, store.Admins().Create(ctx, admin))

	dept := &domain.Department{Name: "Engineering"}
	require.NoError(t, store.Departments().Create(ctx, dept))

	empHash, err := auth.HashPassword("emp-pass", testCost)
	require.NoError(t, err)
	emp := &domain.Employee{
		EmployeeCode: "E-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@corp.test",
		Gender:       domain.GenderFemale,
		DateOfBirth:  time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC),
		DepartmentID: dept.ID,
		Designation:  "Engineer",
		PasswordHash: empHash,
	}
	require.NoError(t, store.Employees().Create(ctx, emp))

	tokens, err := auth.NewTokenService("service-secret")
	require.NoError(t, err)

	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "service-secret", BcryptCost: testCost}}
	return &fixture{
		store:      store,
		cfg:        cfg,
		tokens:     tokens,
		dispatcher: &recordingDispatcher{},
		admin:      admin,
		dept:       dept,
		employee:   emp,
	}
}

func (f *fixture) authService() *AuthService {
	return NewAuthService(f.cfg, AuthDependencies{
		AdminRepo:    f.store.Admins(),
		EmployeeRepo: f.store.Employees(),
		Tokens:       f.tokens,
	})
}

func (f *fixture) employeeService() *EmployeeService {
	return NewEmployeeService(f.cfg, EmployeeDependencies{
		AdminRepo:      f.store.Admins(),
		EmployeeRepo:   f.store.Employees(),
		DepartmentRepo: f.store.Departments(),
		Dispatcher:     f.dispatcher,
	})
}

func (f *fixture) adminIdentity() domain.Identity {
	return domain.AdminIdentity(f.admin)
}

func (f *fixture) employeeIdentity() domain.Identity {
	return domain.EmployeeIdentity(f.employee)
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository/memory"
)

type harness struct {
	t     *testing.T
	app   *App
	store *memory.Store
	admin *domain.Administrator
}

func newHarness(t *testing.T, throttle auth.LoginThrottle) *harness {
	t.Helper()
	store := memory.New()

	hash, err := auth.HashPassword("admin-pass", 4)
	require.NoError(t, err)
	admin := &domain.Administrator{Name: "Admin", Email: "admin@corp.test", PasswordHash: hash}
	require.NoError(t, store.Admins().Create(context.Background(), admin))

	cfg := config.Config{
		App:  config.AppConfig{Name: "employee-service-test", Version: "test", RequestTimeoutSeconds: 5},
		Auth: config.AuthConfig{JWTSecret: "e2e-secret", BcryptCost: 4},
	}
	a, err := New(Options{
		Config:   cfg,
		Repos:    MemoryRepositories(store),
		Throttle: throttle,
		Registry: prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	return &harness{t: t, app: a, store: store, admin: admin}
}

func (h *harness) call(method, path, token string, body any) (int, map[string]any) {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Fiber.Test(req, int((5 * time.Second).Milliseconds()))
	require.NoError(h.t, err)

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (h *harness) login(email, password string) string {
	h.t.Helper()
	status, body := h.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(h.t, http.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(h.t, token)
	return token
}

func TestAdminLoginThenDeletion(t *testing.T) {
	h := newHarness(t, nil)

	token := h.login("admin@corp.test", "admin-pass")

	status, _ := h.call(http.MethodGet, "/api/dashboard/summary", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := h.call(http.MethodGet, "/api/dashboard/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UNAUTHENTICATED", body["code"])

	require.NoError(t, h.store.Admins().Delete(context.Background(), h.admin.ID))

	status, body = h.call(http.MethodGet, "/api/dashboard/summary", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", body["code"])
}

func TestLoginResponseShape(t *testing.T) {
	h := newHarness(t, nil)

	status, body := h.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@corp.test", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, status)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, h.admin.ID, user["id"])
	assert.Equal(t, "Admin", user["name"])
	assert.Equal(t, "admin@corp.test", user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, user, "passwordHash")

	status, body = h.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@corp.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	status, body = h.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	status, body = h.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
}

func TestLogin_StoredEmailWithoutDomainSuffix(t *testing.T) {
	h := newHarness(t, nil)

	hash, err := auth.HashPassword("root-pass", 4)
	require.NoError(t, err)
	root := &domain.Administrator{Name: "Root", Email: "root@intranet", PasswordHash: hash}
	require.NoError(t, h.store.Admins().Create(context.Background(), root))

	token := h.login("root@intranet", "root-pass")

	status, body := h.call(http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, root.ID, body["user"].(map[string]any)["id"])
}

func TestEmployeeFlows(t *testing.T) {
	h := newHarness(t, nil)
	adminToken := h.login("admin@corp.test", "admin-pass")

	status, body := h.call(http.MethodPost, "/api/department/add", adminToken, map[string]string{"name": "Engineering"})
	require.Equal(t, http.StatusCreated, status, body)
	deptID := body["data"].(map[string]any)["id"].(string)

	status, body = h.call(http.MethodPost, "/api/employee", adminToken, map[string]any{
		"employeeId":  "E-100",
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"email":       "ada@corp.test",
		"gender":      "female",
		"dateOfBirth": "1990-12-10",
		"salary":      4200,
		"department":  deptID,
		"designation": "Engineer",
		"password":    "ada-pass",
	})
	require.Equal(t, http.StatusCreated, status, body)
	emp := body["data"].(map[string]any)
	empID := emp["id"].(string)
	assert.NotContains(t, emp, "passwordHash")

	empToken := h.login("ada@corp.test", "ada-pass")

	// Employee on an admin endpoint is forbidden, not redirected.
	status, body = h.call(http.MethodGet, "/api/employee", empToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, body = h.call(http.MethodGet, "/api/employee/profile", empToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Engineering", body["data"].(map[string]any)["departmentName"])

	status, body = h.call(http.MethodGet, "/api/auth/verify", empToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "employee", body["user"].(map[string]any)["role"])

	status, _ = h.call(http.MethodPost, "/api/salary", adminToken, map[string]any{
		"employee":    empID,
		"basicSalary": 1000,
		"allowances":  map[string]float64{"hra": 100, "da": 50, "medical": 25, "ta": 25},
		"deductions":  map[string]float64{"pf": 60, "tax": 90, "insurance": 10},
		"paymentDate": "2024-03-31",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = h.call(http.MethodGet, "/api/salary/employee/"+empID, empToken, nil)
	require.Equal(t, http.StatusOK, status)
	salaries := body["data"].([]any)
	require.Len(t, salaries, 1)
	assert.Equal(t, 1040.0, salaries[0].(map[string]any)["netSalary"])

	status, _ = h.call(http.MethodGet, "/api/salary/employee/"+h.admin.ID, empToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = h.call(http.MethodPost, "/api/leave/add", empToken, map[string]string{
		"fromDate":  "2024-07-01",
		"toDate":    "2024-07-03",
		"reason":    "vacation",
		"leaveType": "annual",
	})
	require.Equal(t, http.StatusCreated, status, body)
	leaveID := body["data"].(map[string]any)["id"].(string)

	status, body = h.call(http.MethodPatch, "/api/leave/"+leaveID, adminToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "approved", body["data"].(map[string]any)["status"])

	status, _ = h.call(http.MethodPost, "/api/attendance", adminToken, map[string]any{
		"date":    "2024-07-05",
		"records": []map[string]string{{"employee": empID, "status": "present"}},
	})
	require.Equal(t, http.StatusOK, status)

	status, body = h.call(http.MethodGet, "/api/attendance/employee?month=2024-07", empToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, 100.0, stats["attendancePercentage"])

	status, body = h.call(http.MethodPost, "/api/auth/password/change", empToken, map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newer-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
}

func TestLoginThrottled(t *testing.T) {
	h := newHarness(t, auth.NewMemoryThrottle(1, time.Hour, 1))

	h.login("admin@corp.test", "admin-pass")

	status, body := h.call(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@corp.test", "password": "admin-pass"})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "TOO_MANY_REQUESTS", body["code"])
}

func TestViewsAndHealthChecks(t *testing.T) {
	h := newHarness(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard/employees", nil)
	resp, err := h.app.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, domain.LoginPath, resp.Header.Get("Location"))

	token := h.login("admin@corp.test", "admin-pass")
	req = httptest.NewRequest(http.MethodGet, "/admin-dashboard/employees", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	resp, err = h.app.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, body := h.call(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "logged out", body["message"])

	status, body = h.call(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, _ = h.call(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err = h.app.Fiber.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "logins_total")
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Options{Repos: MemoryRepositories(memory.New())})
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

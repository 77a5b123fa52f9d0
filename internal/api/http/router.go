package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Departments    *handlers.DepartmentHandler
	Employees      *handlers.EmployeeHandler
	Salaries       *handlers.SalaryHandler
	Attendance     *handlers.AttendanceHandler
	Leaves         *handlers.LeaveHandler
	Dashboard      *handlers.DashboardHandler
	Views          *handlers.ViewHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginThrottle  fiber.Handler
	MetricsGather  prometheus.Gatherer
	StaticDir      string
}

// RegisterRoutes wires HTTP routes. Every /api route except login and health
// passes the authorization gate and then declares the role it requires.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsGather != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.MetricsGather, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)

	loginChain := []fiber.Handler{}
	if cfg.LoginThrottle != nil {
		loginChain = append(loginChain, cfg.LoginThrottle)
	}
	loginChain = append(loginChain, cfg.Auth.Login)
	api.Post("/auth/login", loginChain...)

	gate := cfg.AuthMiddleware.Handle
	admin := auth.RequireAdmin()
	employee := auth.RequireEmployee()
	anyRole := auth.RequireAnyRole()

	api.Get("/auth/verify", gate, anyRole, cfg.Auth.Verify)
	api.Post("/auth/logout", gate, anyRole, cfg.Auth.Logout)
	api.Post("/auth/password/change", gate, anyRole, cfg.Auth.ChangePassword)

	api.Get("/user/profile", gate, admin, cfg.Auth.AdminProfile)
	api.Put("/user/profile", gate, admin, cfg.Auth.UpdateAdminProfile)

	departments := api.Group("/department", gate, admin)
	departments.Post("/add", cfg.Departments.Create)
	departments.Get("/", cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Put("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)

	// Employee self-service paths are registered before /employee/:id.
	api.Get("/employee/profile", gate, employee, cfg.Auth.EmployeeProfile)
	api.Post("/employee/change-password", gate, employee, cfg.Auth.ChangePassword)
	api.Get("/employee/department/:departmentId", gate, admin, cfg.Employees.ListByDepartment)
	api.Post("/employee", gate, admin, cfg.Employees.Create)
	api.Get("/employee", gate, admin, cfg.Employees.List)
	api.Get("/employee/:id", gate, admin, cfg.Employees.Get)
	api.Put("/employee/:id", gate, admin, cfg.Employees.Update)
	api.Delete("/employee/:id", gate, admin, cfg.Employees.Delete)

	api.Get("/salary/employee/:employeeId", gate, anyRole, cfg.Salaries.EmployeeHistory)
	api.Post("/salary", gate, admin, cfg.Salaries.Create)
	api.Get("/salary", gate, admin, cfg.Salaries.List)
	api.Get("/salary/:id", gate, admin, cfg.Salaries.Get)
	api.Put("/salary/:id", gate, admin, cfg.Salaries.Update)
	api.Delete("/salary/:id", gate, admin, cfg.Salaries.Delete)

	api.Get("/attendance/employee", gate, employee, cfg.Attendance.EmployeeMonth)
	api.Get("/attendance/report", gate, admin, cfg.Attendance.Report)
	api.Post("/attendance", gate, admin, cfg.Attendance.Mark)
	api.Get("/attendance", gate, admin, cfg.Attendance.Sheet)

	api.Post("/leave/add", gate, employee, cfg.Leaves.Request)
	api.Get("/leave/employee-leaves", gate, employee, cfg.Leaves.Mine)
	api.Get("/leave/all", gate, admin, cfg.Leaves.All)
	api.Patch("/leave/:leaveId", gate, admin, cfg.Leaves.Review)

	api.Get("/dashboard/summary", gate, admin, cfg.Dashboard.Summary)

	registerViews(app, cfg)
}

// registerViews wires the UI areas. Views redirect instead of returning
// 401/403; the API above never redirects.
func registerViews(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.AuthMiddleware.Landing)
	app.Get(domain.LoginPath, cfg.Views.Index)

	adminView := cfg.AuthMiddleware.View(domain.AccessAdmin)
	employeeView := cfg.AuthMiddleware.View(domain.AccessEmployee)
	app.Get(domain.AdminHomePath, adminView, cfg.Views.Index)
	app.Get(domain.AdminHomePath+"/*", adminView, cfg.Views.Index)
	app.Get(domain.EmployeeHomePath, employeeView, cfg.Views.Index)
	app.Get(domain.EmployeeHomePath+"/*", employeeView, cfg.Views.Index)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})
	}
}

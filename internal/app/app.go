package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/repository/memory"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

// Repositories is the set of stores the services run on.
type Repositories struct {
	Admins      repository.AdminRepository
	Employees   repository.EmployeeRepository
	Departments repository.DepartmentRepository
	Salaries    repository.SalaryRepository
	Attendance  repository.AttendanceRepository
	Leaves      repository.LeaveRepository
}

// PostgresRepositories builds repositories over a pgx pool.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Admins:      repository.NewAdminRepository(pool),
		Employees:   repository.NewEmployeeRepository(pool),
		Departments: repository.NewDepartmentRepository(pool),
		Salaries:    repository.NewSalaryRepository(pool),
		Attendance:  repository.NewAttendanceRepository(pool),
		Leaves:      repository.NewLeaveRepository(pool),
	}
}

// MemoryRepositories builds repositories over an in-process store.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Admins:      store.Admins(),
		Employees:   store.Employees(),
		Departments: store.Departments(),
		Salaries:    store.Salaries(),
		Attendance:  store.Attendance(),
		Leaves:      store.Leaves(),
	}
}

// Options configures New.
type Options struct {
	Config   config.Config
	Logger   *zap.Logger
	Repos    Repositories
	Throttle auth.LoginThrottle
	Registry *prometheus.Registry
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
}

// App holds the HTTP server and its background worker.
type App struct {
	Fiber  *fiber.App
	Auth   *service.AuthService
	worker *notificationRunner
	logger *zap.Logger
}

type notificationRunner struct {
	worker *worker.NotificationWorker
	cancel context.CancelFunc
}

// New wires services, handlers and routes. It fails when the signing secret
// is missing.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	var metrics *observability.Metrics
	if opts.Registry != nil {
		metrics = observability.NewMetrics(opts.Registry)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifications := service.NewNotificationService(logger, cfg.Notification)
	notifier := worker.NewNotificationWorker(notifications, logger, 0)
	notifier.Subscribe(dispatcher)
	workerCtx, cancel := context.WithCancel(context.Background())
	notifier.Start(workerCtx)

	repos := opts.Repos
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AdminRepo:    repos.Admins,
		EmployeeRepo: repos.Employees,
		Tokens:       tokens,
		Logger:       logger,
		Metrics:      metrics,
	})
	departmentService := service.NewDepartmentService(repos.Departments, repos.Employees)
	employeeService := service.NewEmployeeService(cfg, service.EmployeeDependencies{
		AdminRepo:      repos.Admins,
		EmployeeRepo:   repos.Employees,
		DepartmentRepo: repos.Departments,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	salaryService := service.NewSalaryService(repos.Salaries, repos.Employees, dispatcher)
	attendanceService := service.NewAttendanceService(repos.Attendance, repos.Employees)
	leaveService := service.NewLeaveService(repos.Leaves, dispatcher)
	dashboardService := service.NewDashboardService(repos.Employees, repos.Departments, repos.Salaries, repos.Leaves)

	authMiddleware := auth.NewAuthMiddleware(tokens, authService.Identities(), metrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
	})

	var loginThrottle fiber.Handler
	if opts.Throttle != nil {
		loginThrottle = auth.ThrottleLogin(opts.Throttle, logger)
	}
	var gatherer prometheus.Gatherer
	if opts.Registry != nil {
		gatherer = opts.Registry
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, opts.Postgres, opts.Redis),
		Auth:           handlers.NewAuthHandler(authService),
		Departments:    handlers.NewDepartmentHandler(departmentService),
		Employees:      handlers.NewEmployeeHandler(employeeService),
		Salaries:       handlers.NewSalaryHandler(salaryService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Leaves:         handlers.NewLeaveHandler(leaveService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Views:          handlers.NewViewHandler(cfg.App.StaticDir),
		AuthMiddleware: authMiddleware,
		LoginThrottle:  loginThrottle,
		MetricsGather:  gatherer,
		StaticDir:      cfg.App.StaticDir,
	})

	return &App{
		Fiber:  app,
		Auth:   authService,
		worker: &notificationRunner{worker: notifier, cancel: cancel},
		logger: logger,
	}, nil
}

// Shutdown stops the HTTP server, then drains the notification queue.
func (a *App) Shutdown() error {
	err := a.Fiber.Shutdown()
	a.worker.worker.Stop()
	a.worker.cancel()
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

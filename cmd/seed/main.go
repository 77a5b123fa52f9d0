package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
)

// CLI flags
var (
	name     = flag.String("name", "", "Administrator name (default: env SEED_ADMIN_NAME)")
	email    = flag.String("email", "", "Administrator email (default: env SEED_ADMIN_EMAIL)")
	password = flag.String("password", "", "Administrator password (default: env SEED_ADMIN_PASSWORD)")
	migrate  = flag.Bool("migrate", true, "Apply SQL migrations before seeding")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingJWTSecret) {
		fatalf("config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	seed := cfg.Seed
	if *name != "" {
		seed.AdminName = *name
	}
	if *email != "" {
		seed.AdminEmail = *email
	}
	if *password != "" {
		seed.AdminPassword = *password
	}
	if seed.AdminPassword == "" {
		fatalf("--password not provided and SEED_ADMIN_PASSWORD not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		fatalf("postgres: %v", err)
	}
	defer pg.Close()

	if *migrate {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			fatalf("migrations: %v", err)
		}
	}

	pool := pg.PoolHandle()
	created, err := seedAdmin(ctx, repository.NewAdminRepository(pool), repository.NewEmployeeRepository(pool), seed, cfg.Auth.BcryptCost)
	if err != nil {
		fatalf("seed admin: %v", err)
	}
	if created {
		logger.Info("administrator created", zap.String("email", seed.AdminEmail))
	} else {
		logger.Info("administrator already present", zap.String("email", seed.AdminEmail))
	}
}

// seedAdmin creates the administrator unless one with the same email exists.
// An employee already holding the email is an error.
func seedAdmin(ctx context.Context, admins repository.AdminRepository, employees repository.EmployeeRepository, seed config.SeedConfig, cost int) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(seed.AdminEmail))
	if email == "" {
		return false, errors.New("administrator email is empty")
	}
	_, err := admins.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}
	taken, err := repository.NewIdentityStore(admins, employees).EmailTaken(ctx, email, "")
	if err != nil {
		return false, err
	}
	if taken {
		return false, fmt.Errorf("email %q already belongs to an employee", email)
	}

	hash, err := auth.HashPassword(seed.AdminPassword, cost)
	if err != nil {
		return false, err
	}
	admin := &domain.Administrator{
		Name:         seed.AdminName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := admins.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "seed: "+format+"\n", args...)
	os.Exit(1)
}

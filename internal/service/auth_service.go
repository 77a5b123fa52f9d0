package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// AuthService coordinates login and credential flows for both stores.
type AuthService struct {
	identities *repository.IdentityStore
	admins     repository.AdminRepository
	employees  repository.EmployeeRepository
	tokens     *auth.TokenService
	bcryptCost int
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AdminRepo    repository.AdminRepository
	EmployeeRepo repository.EmployeeRepository
	Tokens       *auth.TokenService
	Logger       *zap.Logger
	Metrics      *observability.Metrics
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  domain.Identity
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		identities: repository.NewIdentityStore(deps.AdminRepo, deps.EmployeeRepo),
		admins:     deps.AdminRepo,
		employees:  deps.EmployeeRepo,
		tokens:     deps.Tokens,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// Identities exposes the combined store for the authorization gate.
func (s *AuthService) Identities() *repository.IdentityStore {
	return s.identities
}

// Login authenticates an email and password against the administrator store,
// then the employee store. Every failure returns the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		auth.BurnCompare(password)
		s.metrics.RecordLogin(false, "")
		return nil, apperrors.NewInvalidCredentials()
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(identity.PasswordHash(), password); err != nil {
		s.metrics.RecordLogin(false, string(identity.Role()))
		return nil, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokens.Issue(identity.ID(), identity.Role())
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.metrics.RecordLogin(true, string(identity.Role()))
	s.logger.Info("login succeeded",
		zap.String("subject_id", identity.ID()),
		zap.String("role", string(identity.Role())))

	return &LoginResult{Token: token, ExpiresAt: exp, Identity: identity}, nil
}

// Logout records the event. Tokens stay valid until they expire; the client
// discards its copy.
func (s *AuthService) Logout(_ context.Context, identity domain.Identity) {
	s.logger.Info("logout",
		zap.String("subject_id", identity.ID()),
		zap.String("role", string(identity.Role())))
}

// ChangePassword verifies the current password before storing the new hash.
// The identity's role picks the store that is updated.
func (s *AuthService) ChangePassword(ctx context.Context, actor domain.Identity, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.NewValidationError("new password is required", nil)
	}
	fresh, err := s.identities.FindByID(ctx, actor.Role(), actor.ID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthenticated("User not found")
		}
		return apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(fresh.PasswordHash(), currentPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	switch fresh.Role() {
	case domain.RoleAdmin:
		fresh.Admin.PasswordHash = hash
		err = s.admins.Update(ctx, fresh.Admin)
	case domain.RoleEmployee:
		fresh.Employee.PasswordHash = hash
		err = s.employees.Update(ctx, fresh.Employee)
	default:
		return apperrors.NewUnauthenticated("User not found")
	}
	if err != nil {
		return apperrors.MapError(err)
	}
	s.logger.Info("password changed",
		zap.String("subject_id", fresh.ID()),
		zap.String("role", string(fresh.Role())))
	return nil
}

// AdminProfileInput carries editable administrator fields.
type AdminProfileInput struct {
	Name        *string
	Email       *string
	JobTitle    *string
	PhoneNumber *string
}

// AdminProfile returns the caller's administrator record.
func (s *AuthService) AdminProfile(ctx context.Context, adminID string) (*domain.Administrator, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "administrator")
	}
	return admin, nil
}

// UpdateAdminProfile applies the provided fields. A changed email must not be
// held by any other identity in either store.
func (s *AuthService) UpdateAdminProfile(ctx context.Context, adminID string, input AdminProfileInput) (*domain.Administrator, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "administrator")
	}

	if input.Name != nil {
		admin.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != admin.Email {
			taken, err := s.identities.EmailTaken(ctx, email, admin.ID)
			if err != nil {
				return nil, apperrors.NewInternalError(err)
			}
			if taken {
				return nil, apperrors.NewConflict("email already in use", map[string]any{"email": email})
			}
			admin.Email = email
		}
	}
	if input.JobTitle != nil {
		admin.JobTitle = strings.TrimSpace(*input.JobTitle)
	}
	if input.PhoneNumber != nil {
		admin.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}
	return admin, nil
}

// EmployeeProfile returns the caller's employee record with department name.
func (s *AuthService) EmployeeProfile(ctx context.Context, employeeID string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, apperrors.NotFoundAs(err, "employee")
	}
	return emp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

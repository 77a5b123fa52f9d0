package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/observability"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const (
	principalKey = "auth_principal"
	// TokenCookie is read by the view gate when no Authorization header is sent.
	TokenCookie = "token"
)

// Principal represents the authenticated caller. Handlers learn who is calling
// only through this value, never from request bodies.
type Principal struct {
	Identity domain.Identity
}

// ID returns the subject id.
func (p *Principal) ID() string { return p.Identity.ID() }

// Role is the store the identity was loaded from.
func (p *Principal) Role() domain.Role { return p.Identity.Role() }

// IdentityLookup loads a subject from the store implied by role.
type IdentityLookup interface {
	FindByID(ctx context.Context, role domain.Role, id string) (domain.Identity, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens     *TokenService
	identities IdentityLookup
	metrics    *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenService, identities IdentityLookup, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, identities: identities, metrics: metrics}
}

// Handle enforces authentication for protected API routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		m.metrics.RecordAuthFailure("missing_token")
		return err
	}

	principal, err := m.Authenticate(c.UserContext(), token)
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// Authenticate verifies the token and re-loads the subject. A valid signature
// is not enough: the subject must still exist in the store named by the token.
func (m *AuthMiddleware) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			m.metrics.RecordAuthFailure("token_expired")
			return nil, apperrors.NewUnauthenticated("Token expired")
		}
		m.metrics.RecordAuthFailure("invalid_token")
		return nil, apperrors.NewUnauthenticated("Invalid token")
	}

	identity, err := m.identities.FindByID(ctx, claims.Role, claims.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			m.metrics.RecordAuthFailure("subject_missing")
			return nil, apperrors.NewUnauthenticated("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if identity.Role() != claims.Role {
		m.metrics.RecordAuthFailure("role_mismatch")
		return nil, apperrors.NewUnauthenticated("Invalid token")
	}

	return &Principal{Identity: identity}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthenticated("No token provided")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthenticated("Invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

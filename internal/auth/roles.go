package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/domain"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// RequireRole gates an API route. A missing principal is 401 and a role that
// the route does not accept is 403; API routes never redirect.
func RequireRole(access domain.Access) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("Authentication required")
		}
		if !access.Allows(principal.Role()) {
			return apperrors.NewForbidden("You do not have access to this resource")
		}
		return c.Next()
	}
}

// RequireAdmin passes administrators only.
func RequireAdmin() fiber.Handler { return RequireRole(domain.AccessAdmin) }

// RequireEmployee passes employees only.
func RequireEmployee() fiber.Handler { return RequireRole(domain.AccessEmployee) }

// RequireAnyRole passes any authenticated identity.
func RequireAnyRole() fiber.Handler { return RequireRole(domain.AccessBoth) }

// View gates a UI area. Unauthenticated callers go to the login page and
// callers in the wrong area go to their own home; neither sees an error page.
func (m *AuthMiddleware) View(access domain.Access) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := m.viewPrincipal(c)
		if err != nil {
			if apperrors.ToDomainError(err).HTTPStatus == fiber.StatusUnauthorized {
				return c.Redirect(domain.LoginPath, fiber.StatusFound)
			}
			return err
		}
		if !access.Allows(principal.Role()) {
			return c.Redirect(principal.Role().HomePath(), fiber.StatusFound)
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// Landing sends "/" to the caller's home, or to the login page.
func (m *AuthMiddleware) Landing(c *fiber.Ctx) error {
	principal, err := m.viewPrincipal(c)
	if err != nil {
		if apperrors.ToDomainError(err).HTTPStatus == fiber.StatusUnauthorized {
			return c.Redirect(domain.LoginPath, fiber.StatusFound)
		}
		return err
	}
	return c.Redirect(principal.Role().HomePath(), fiber.StatusFound)
}

func (m *AuthMiddleware) viewPrincipal(c *fiber.Ctx) (*Principal, error) {
	token := c.Cookies(TokenCookie)
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		var err error
		if token, err = bearerToken(header); err != nil {
			return nil, err
		}
	}
	if token == "" {
		return nil, apperrors.NewUnauthenticated("No token provided")
	}
	return m.Authenticate(c.UserContext(), token)
}

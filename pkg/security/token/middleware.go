package token

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/authd/pkg/user"
)

// localsUserKey is where RequireAuth parks the authenticated principal.
const localsUserKey = "currentUser"

// BearerToken extracts the token from an Authorization header.
// Supports both "Bearer <token>" and "<token>" (no prefix).
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
		if strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return header
}

func unauthenticated(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"kind":    "unauthenticated",
		"message": message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusForbidden).JSON(fiber.Map{
		"kind":    "unauthorized",
		"message": message,
	})
}

// RequireAuth returns a Fiber middleware validating a Bearer access token
// and loading the corresponding user. On success the principal is available
// via CurrentUser; any failure short-circuits with 401.
func RequireAuth(m *Manager, users user.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if tok == "" {
			return unauthenticated(c, "missing bearer token")
		}
		claims, err := m.Verify(tok, TypeAccess)
		if err != nil {
			return unauthenticated(c, "invalid or expired token")
		}
		id, err := claims.UserID()
		if err != nil {
			return unauthenticated(c, "invalid token subject")
		}
		u, err := users.GetByID(c.Context(), id)
		if err != nil {
			return unauthenticated(c, "unknown user")
		}
		c.Locals(localsUserKey, u)
		return c.Next()
	}
}

// RequireActive rejects principals whose account is deactivated.
// Must run after RequireAuth.
func RequireActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return unauthenticated(c, "not authenticated")
		}
		if !u.IsActive {
			return unauthorized(c, "inactive user")
		}
		return c.Next()
	}
}

// RequireSuperuser rejects non-superuser principals. Must run after RequireAuth.
func RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return unauthenticated(c, "not authenticated")
		}
		if !u.IsSuperuser {
			return unauthorized(c, "superuser privileges required")
		}
		return c.Next()
	}
}

// CurrentUser returns the principal stored by RequireAuth.
func CurrentUser(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(localsUserKey).(user.User)
	return u, ok
}

package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates hierarchy and delegation mutations to admins.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.IsAdmin {
			return fiber.NewError(http.StatusForbidden, "admin required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller is logged in.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

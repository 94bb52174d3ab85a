package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "patharwalay/internal/log"
	"patharwalay/internal/services"
)

const (
	adminCookie      = "admin_ok"
	adminCookieValue = "1"
	keepMaxAge       = 30 * 24 * 60 * 60 // seconds
)

// RequireAdmin gates mutating routes. An instance with no admin secret
// configured is open and every check passes; otherwise the admin session
// cookie must be present. A failed check performs no side effects.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		protected, err := auth.Protected(c.Context())
		if err != nil {
			applog.Error(c, "authz.settings.read.fail", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
		}
		if !protected {
			return c.Next()
		}
		if c.Cookies(adminCookie) == adminCookieValue {
			return c.Next()
		}
		applog.Security(c, "access.denied.admin", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
}

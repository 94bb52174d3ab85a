package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "patharwalay/internal/log"
	"patharwalay/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// Status reports whether the instance is protected and whether the caller's
// session cookie is currently honored.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	protected, err := h.Auth.Protected(c.Context())
	if err != nil {
		applog.Error(c, "auth.status.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	ok := protected && c.Cookies(adminCookie) == adminCookieValue
	return c.JSON(fiber.Map{"protected": protected, "ok": ok})
}

// Login verifies the submitted credential and sets the admin session cookie
// on success: a session cookie by default, a 30-day one when keep is set.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Password string `json:"password"`
		Keep     bool   `json:"keep"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	ok, err := h.Auth.Verify(c.Context(), body.Password)
	if err != nil {
		applog.Error(c, "auth.login.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	if !ok {
		applog.Security(c, "auth.login.denied", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"ok": false})
	}

	cookie := &fiber.Cookie{
		Name:     adminCookie,
		Value:    adminCookieValue,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if body.Keep {
		cookie.MaxAge = keepMaxAge
		cookie.Expires = time.Now().Add(keepMaxAge * time.Second)
	}
	c.Cookie(cookie)
	applog.Audit(c, "auth.login.success", map[string]any{"keep": body.Keep})
	return c.JSON(fiber.Map{"ok": true})
}

// Logout clears the admin session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     adminCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "patharwalay/internal/log"
	"patharwalay/internal/services"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

// Get is public; the admin secret never serializes (json:"-"). Short CDN
// caching keeps repeated page renders cheap.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	doc, err := h.Settings.Get(c.Context())
	if err != nil {
		applog.Error(c, "settings.get.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	c.Set(fiber.HeaderCacheControl, "public, s-maxage=60, stale-while-revalidate=30")
	return c.JSON(doc)
}

// Put upserts the singleton settings document and triggers per-slot hero
// image cleanup.
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var in services.SettingsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	doc, err := h.Settings.Update(c.Context(), in)
	if err != nil {
		applog.Error(c, "settings.put.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	applog.Audit(c, "settings.update", nil)
	return c.JSON(doc)
}

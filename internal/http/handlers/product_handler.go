package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"patharwalay/internal/domain"
	applog "patharwalay/internal/log"
	"patharwalay/internal/repos"
	"patharwalay/internal/services"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List is the public catalog listing: ?q, ?category, ?page, ?pageSize.
// Served from the short-TTL cache when parameters repeat.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := domain.Query{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 0),
	}
	items, err := h.Catalog.List(c.Context(), q)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(items)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.Catalog.Get(c.Context(), c.Params("id"))
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	if err != nil {
		applog.Error(c, "products.get.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	raw, ok := decodeBody(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	created, err := h.Catalog.Create(c.Context(), raw)
	if err != nil {
		return h.mutationError(c, "products.create.fail", err)
	}
	applog.Audit(c, "products.create", map[string]any{"slug": created.Slug})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	raw, ok := decodeBody(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	id := c.Params("id")
	updated, err := h.Catalog.Update(c.Context(), id, raw)
	if err != nil {
		return h.mutationError(c, "products.update.fail", err)
	}
	applog.Audit(c, "products.update", map[string]any{"id": id})
	return c.JSON(updated)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.Delete(c.Context(), id); err != nil {
		return h.mutationError(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProductHandler) mutationError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSlugExhausted):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
}

func decodeBody(c *fiber.Ctx) (map[string]any, bool) {
	var raw map[string]any
	if err := json.Unmarshal(c.Body(), &raw); err != nil || raw == nil {
		return nil, false
	}
	return raw, true
}

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"patharwalay/internal/assets"
	applog "patharwalay/internal/log"
)

// MaxUploadBytes is the upload size ceiling. The server's global body limit
// sits slightly above it so this handler gets to answer with JSON.
const MaxUploadBytes = 5 * 1024 * 1024

type UploadHandler struct {
	Assets assets.Store
}

// Upload accepts a single multipart image and returns the stored asset's
// address plus the raw provider metadata.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}
	if fh.Size > MaxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "File too large. Max allowed 5 MB"})
	}
	if ct := fh.Header.Get(fiber.HeaderContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only image uploads are allowed"})
	}

	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "upload.open.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload failed"})
	}
	defer f.Close()

	res, err := h.Assets.Upload(c.Context(), f)
	if err != nil {
		applog.Error(c, "upload.store.fail", err, map[string]any{"name": fh.Filename, "size": fh.Size})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload failed"})
	}
	applog.Audit(c, "upload.success", map[string]any{"public_id": res.PublicID, "size": fh.Size})
	return c.JSON(fiber.Map{"ok": true, "secure_url": res.SecureURL, "raw": res.Raw})
}

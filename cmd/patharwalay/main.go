package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"patharwalay/internal/assets"
	"patharwalay/internal/config"
	"patharwalay/internal/http/handlers"
	applog "patharwalay/internal/log"
	"patharwalay/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	db, err := repos.Open(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal(err)
	}

	var store assets.Store
	if cfg.CloudinaryURL != "" {
		cld, err := assets.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal(err)
		}
		store = cld
	} else {
		log.Println("[warn] CLOUDINARY_URL not set; uploads disabled, asset cleanup skipped")
		store = assets.Disabled{}
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; JSON for the API, friendly page elsewhere
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
			}
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Room for the upload ceiling plus multipart overhead
	app.Server().MaxRequestBodySize = handlers.MaxUploadBytes + 1<<20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))

	app.Static("/static", "./web/static")

	deps := handlers.NewDeps(db, cfg, store)

	// Public pages
	app.Get("/", deps.PagesHandler.Home)
	app.Get("/products", deps.PagesHandler.Products)
	app.Get("/products/:slug", deps.PagesHandler.Detail)

	// API
	api := app.Group("/api")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireAdmin(deps.Auth), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireAdmin(deps.Auth), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireAdmin(deps.Auth), deps.ProductHandler.Delete)

	api.Get("/settings", deps.SettingsHandler.Get)
	api.Put("/settings", handlers.RequireAdmin(deps.Auth), deps.SettingsHandler.Put)

	api.Post("/upload", handlers.RequireAdmin(deps.Auth), deps.UploadHandler.Upload)

	// Admin session (login throttled)
	api.Get("/admin-auth", deps.AuthHandler.Status)
	api.Post("/admin-auth", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	api.Delete("/admin-auth", deps.AuthHandler.Logout)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}

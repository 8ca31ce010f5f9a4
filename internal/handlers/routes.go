package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishdb/internal/config"
	"github.com/localnerve/publishdb/internal/database"
	"github.com/localnerve/publishdb/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Register mounts the health probe and the /api routes on app.
func Register(app *fiber.App, cfg *config.Config, db *gorm.DB, registry *database.Registry, log *zap.Logger) {
	health := &HealthHandler{Config: cfg, DB: db, Registry: registry, Log: log}
	app.Get("/health", health.Health)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	archive := NewArchiveHandler(db, cfg.VisibilityRule)
	routes := api.Group("/archive")
	if cfg.CacheExpiration > 0 {
		routes.Use(middleware.ArchiveCache(cfg.CacheExpiration))
	}

	routes.Get("/first", archive.First)
	routes.Get("/last", archive.Last)
	routes.Get("/pages/:slug/next", archive.Next)
	routes.Get("/pages/:slug/previous", archive.Previous)
	routes.Get("/pages/:slug/position", archive.Position)
	routes.Get("/sections/:slug/bookmarks", archive.Bookmarks)
	routes.Get("/sections/:slug/bookmarks/around/:page", archive.BookmarksAround)
	routes.Get("/tags/:name", archive.Tagged)
}

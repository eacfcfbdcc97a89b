package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/catalog"
)

// OptionsHandler serves the listing wizard's option catalog.
type OptionsHandler struct {
	catalog *catalog.Catalog
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(cat *catalog.Catalog) *OptionsHandler {
	return &OptionsHandler{catalog: cat}
}

// Register sets up the catalog route.
func (h *OptionsHandler) Register(router fiber.Router) {
	router.Get("/api/listing-options", h.List)
}

// List returns the whole catalog.
func (h *OptionsHandler) List(c fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.JSON(h.catalog)
}

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// NavigationHandler exposes the navigation audit log to administrators.
type NavigationHandler struct {
	store port.NavigationLogStore
}

// NewNavigationHandler creates a new navigation log handler.
func NewNavigationHandler(store port.NavigationLogStore) *NavigationHandler {
	return &NavigationHandler{store: store}
}

// Register sets up navigation log routes.
func (h *NavigationHandler) Register(router fiber.Router) {
	router.Get("/api/admin/navigation", middleware.RequireRole(domain.RoleAdmin), h.ListLogs)
}

// ListLogs returns navigation logs with optional outcome filtering.
func (h *NavigationHandler) ListLogs(c fiber.Ctx) error {
	limitStr := c.Query("limit", "100")
	limit, _ := strconv.Atoi(limitStr)
	outcome := c.Query("outcome", "")

	logs, err := h.store.ListNavigation(c.Context(), limit, outcome)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"logs":  logs,
		"count": len(logs),
	})
}

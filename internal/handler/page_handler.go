package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// legacyRoutes are old paths kept alive as redirects.
var legacyRoutes = map[string]string{
	"/login/merchant":     domain.PathLogin,
	"/login/owner":        domain.PathLogin,
	"/login/admin":        domain.PathLogin,
	"/dashboard/merchant": domain.PathMerchantDashboard,
	"/dashboard/owner":    domain.PathOwnerDashboard,
	"/admin":              domain.PathAdminDashboard,
	"/owner":              domain.PathOwnerDashboard,
	"/merchant":           domain.PathMerchantDashboard,
	"/home":               domain.PathHome,
}

// PageHandler serves the page view models.
type PageHandler struct {
	dashboards *service.Dashboards
}

// NewPageHandler creates a new page handler.
func NewPageHandler(dashboards *service.Dashboards) *PageHandler {
	return &PageHandler{dashboards: dashboards}
}

// Register sets up page routes.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get(domain.PathHome, h.Home)
	router.Get(domain.PathSearch, h.Search)

	merchant := middleware.RequireRole(domain.RoleMerchant)
	router.Get(domain.PathMerchantDashboard, merchant, h.Merchant)
	router.Get("/merchant/bookings/:id", merchant, h.Booking)

	router.Get(domain.PathOwnerDashboard, middleware.RequireRole(domain.RoleWarehouseOwner), h.Owner)
	router.Get(domain.PathAdminDashboard, middleware.RequireRole(domain.RoleAdmin), h.Admin)

	for from, to := range legacyRoutes {
		router.Get(from, redirectTo(to))
	}
}

// RegisterFallback sends unknown pages home. It must be registered last.
func (h *PageHandler) RegisterFallback(router fiber.Router) {
	router.Use(func(c fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return c.Redirect().Status(fiber.StatusFound).To(domain.PathHome)
	})
}

func redirectTo(path string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.Redirect().Status(fiber.StatusFound).To(path)
	}
}

func page(c fiber.Ctx, name string, view any) error {
	return c.JSON(fiber.Map{
		"page":    name,
		"session": middleware.State(c),
		"view":    view,
	})
}

// Home lists every warehouse.
func (h *PageHandler) Home(c fiber.Ctx) error {
	view, err := h.dashboards.Home(c.Context(), middleware.State(c))
	if err != nil {
		return fail(c, err)
	}
	return page(c, "home", view)
}

// Search runs a warehouse search from the query string.
func (h *PageHandler) Search(c fiber.Ctx) error {
	var params domain.SearchParams
	if err := c.Bind().Query(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
	}
	view, err := h.dashboards.Search(c.Context(), params)
	if err != nil {
		return fail(c, err)
	}
	return page(c, "search", view)
}

// Merchant is the merchant dashboard. Catalogue filters come from the query.
func (h *PageHandler) Merchant(c fiber.Ctx) error {
	filter := domain.WarehouseFilter{
		Term:     strings.TrimSpace(c.Query("term")),
		City:     strings.TrimSpace(c.Query("city")),
		MinSpace: domain.FormNumber(c.Query("minSpace")),
		MaxPrice: domain.FormNumber(c.Query("maxPrice")),
	}
	view, err := h.dashboards.Merchant(c.Context(), middleware.State(c), filter)
	if err != nil {
		return fail(c, err)
	}
	return page(c, "merchant-dashboard", view)
}

// Booking shows one of the merchant's bookings.
func (h *PageHandler) Booking(c fiber.Ctx) error {
	view, err := h.dashboards.Booking(c.Context(), middleware.State(c), domain.ID(c.Params("id")))
	if err != nil {
		return fail(c, err)
	}
	return page(c, "booking", view)
}

// Owner is the warehouse owner's dashboard.
func (h *PageHandler) Owner(c fiber.Ctx) error {
	view, err := h.dashboards.Owner(c.Context(), middleware.State(c))
	if err != nil {
		return fail(c, err)
	}
	return page(c, "owner-dashboard", view)
}

// Admin is the administrator's dashboard.
func (h *PageHandler) Admin(c fiber.Ctx) error {
	view, err := h.dashboards.Admin(c.Context(), middleware.State(c))
	if err != nil {
		return fail(c, err)
	}
	return page(c, "admin-dashboard", view)
}

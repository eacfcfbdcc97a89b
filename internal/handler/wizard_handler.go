package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/catalog"
	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// WizardHandler drives the owner's listing wizard.
type WizardHandler struct {
	wizards *service.WizardRegistry
	catalog *catalog.Catalog
}

// NewWizardHandler creates a new wizard handler.
func NewWizardHandler(wizards *service.WizardRegistry, cat *catalog.Catalog) *WizardHandler {
	return &WizardHandler{wizards: wizards, catalog: cat}
}

// Register sets up the wizard pages and actions. Everything is owner-only.
func (h *WizardHandler) Register(router fiber.Router) {
	owner := middleware.RequireRole(domain.RoleWarehouseOwner)
	router.Get(domain.PathAddListing, owner, h.Open)
	router.Get("/dashboard/owner/listings/:id/edit", owner, h.Open)

	wz := router.Group("/api/wizard", owner)
	wz.Get("/", h.State)
	wz.Put("/form", h.Update)
	wz.Post("/next", h.Next)
	wz.Post("/back", h.Back)
	wz.Post("/step/:index", h.GoTo)
	wz.Post("/save", h.Save)
	wz.Post("/publish", h.Publish)
	wz.Post("/exit", h.Exit)
}

func (h *WizardHandler) respond(c fiber.Ctx, ow *service.OpenWizard, state service.WizardState) error {
	body := fiber.Map{
		"wizard": state,
		"title":  h.catalog.StepTitle(state.StepID),
	}
	withRedirect(body, ow.Nav)
	return c.JSON(body)
}

func (h *WizardHandler) current(c fiber.Ctx) (*service.OpenWizard, error) {
	return h.wizards.Get(middleware.ClientID(c))
}

// Open mounts the wizard for a new listing or for the draft in the path.
func (h *WizardHandler) Open(c fiber.Ctx) error {
	store := middleware.GetSession(c)
	token := func() string { return store.Snapshot().Token }

	ow, err := h.wizards.Open(c.Context(), middleware.ClientID(c), domain.ID(c.Params("id")), token)
	if err != nil {
		if ow != nil {
			return failWith(c, err, ow.Nav)
		}
		return fail(c, err)
	}
	return h.respond(c, ow, ow.Wizard.State())
}

// State returns the open wizard.
func (h *WizardHandler) State(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, ow, ow.Wizard.State())
}

// Update replaces the form with the client's working copy.
func (h *WizardHandler) Update(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	form := domain.NewListingDraft()
	if err := c.Bind().JSON(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	ow.Wizard.Update(form)
	return h.respond(c, ow, ow.Wizard.State())
}

// Next saves and advances. Save failures are reported as toasts.
func (h *WizardHandler) Next(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, ow, ow.Wizard.Next(c.Context()))
}

// Back saves and goes back one step.
func (h *WizardHandler) Back(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	return h.respond(c, ow, ow.Wizard.Back(c.Context()))
}

// GoTo jumps to a step from the step bar.
func (h *WizardHandler) GoTo(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid step"})
	}
	return h.respond(c, ow, ow.Wizard.GoTo(c.Context(), index))
}

// Save is the explicit save button.
func (h *WizardHandler) Save(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	if err := ow.Wizard.Save(c.Context(), domain.SaveManual); err != nil {
		return failWith(c, err, ow.Nav)
	}
	return h.respond(c, ow, ow.Wizard.State())
}

// Publish validates and publishes the listing, then closes the wizard.
func (h *WizardHandler) Publish(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	if err := ow.Wizard.Publish(c.Context()); err != nil {
		if errors.Is(err, port.ErrPublishBlocked) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  err.Error(),
				"wizard": ow.Wizard.State(),
			})
		}
		return failWith(c, err, ow.Nav)
	}
	state := ow.Wizard.State()
	h.wizards.Close(middleware.ClientID(c))
	return h.respond(c, ow, state)
}

// Exit leaves the wizard without saving.
func (h *WizardHandler) Exit(c fiber.Ctx) error {
	ow, err := h.current(c)
	if err != nil {
		return fail(c, err)
	}
	ow.Wizard.Exit()
	state := ow.Wizard.State()
	h.wizards.Close(middleware.ClientID(c))
	return h.respond(c, ow, state)
}

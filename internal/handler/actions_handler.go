package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/middleware"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
	"github.com/Beawareofme/warehouse-frontend/internal/service"
)

// Action feedback shown as toasts.
const (
	MsgDeleted          = "Deleted successfully"
	MsgDeleteFailed     = "Delete failed"
	MsgMessageSent      = "Message sent successfully!"
	MsgBookingRequested = "Booking request sent!"
	MsgBookingConfirmed = "Booking confirmed"
	MsgWarehouseUpdated = "Warehouse updated"
	MsgWarehouseSaved   = "Warehouse updated successfully"
	MsgUserPromoted     = "User promoted to admin"
	MsgUserDeleted      = "User deleted"
)

// ActionsHandler handles the dashboard write actions.
type ActionsHandler struct {
	actions *service.Actions
	toasts  *service.ToastCenter
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(actions *service.Actions, toasts *service.ToastCenter) *ActionsHandler {
	return &ActionsHandler{actions: actions, toasts: toasts}
}

// Register sets up action routes, guarded by role.
func (h *ActionsHandler) Register(router fiber.Router) {
	router.Post("/api/book", h.BookNow)

	owner := router.Group("/api/owner", middleware.RequireRole(domain.RoleWarehouseOwner))
	owner.Put("/bookings/:id/status", h.SetBookingStatus)
	owner.Post("/bookings/:id/message", h.MessageMerchant)
	owner.Put("/warehouses/:id", h.UpdateWarehouse)
	owner.Delete("/warehouses/:id", h.DeleteWarehouse)

	merchant := router.Group("/api/merchant", middleware.RequireRole(domain.RoleMerchant))
	merchant.Post("/bookings", h.RequestBooking)

	admin := router.Group("/api/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Put("/warehouses/:id/approve", h.ApproveWarehouse)
	admin.Delete("/warehouses/:id", h.AdminDeleteWarehouse)
	admin.Put("/users/:id/promote", h.PromoteUser)
	admin.Delete("/users/:id", h.DeleteUser)
}

func (h *ActionsHandler) notify(c fiber.Ctx) port.Notifier {
	return h.toasts.For(middleware.ClientID(c))
}

// failed toasts the error and writes it.
func (h *ActionsHandler) failed(c fiber.Ctx, prefix string, err error) error {
	h.notify(c).Error(prefix + port.MessageOf(err, MsgUnexpected))
	return fail(c, err)
}

// SetBookingStatus approves or rejects a booking.
func (h *ActionsHandler) SetBookingStatus(c fiber.Ctx) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	bookings, err := h.actions.SetBookingStatus(c.Context(), middleware.State(c), domain.ID(c.Params("id")), body.Status)
	if err != nil {
		return h.failed(c, "Error: ", err)
	}
	h.notify(c).Success("Booking " + strings.ToLower(strings.TrimSpace(body.Status)))
	return c.JSON(fiber.Map{"bookings": bookings})
}

// MessageMerchant sends a note about a booking.
func (h *ActionsHandler) MessageMerchant(c fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	msg := domain.BookingMessage{BookingID: domain.ID(c.Params("id")), Message: body.Message}
	if err := h.actions.MessageMerchant(c.Context(), middleware.State(c), msg); err != nil {
		return h.failed(c, "", err)
	}
	h.notify(c).Success(MsgMessageSent)
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteWarehouse removes one of the owner's warehouses.
func (h *ActionsHandler) DeleteWarehouse(c fiber.Ctx) error {
	if err := h.actions.DeleteWarehouse(c.Context(), middleware.State(c), domain.ID(c.Params("id"))); err != nil {
		h.notify(c).Error(MsgDeleteFailed)
		return fail(c, err)
	}
	h.notify(c).Success(MsgDeleted)
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateWarehouse edits one of the owner's warehouses from a form post.
// Files posted as "images" are uploaded with it.
func (h *ActionsHandler) UpdateWarehouse(c fiber.Ctx) error {
	upd := domain.WarehouseUpdate{
		Name:           c.FormValue("name"),
		Address:        c.FormValue("address"),
		City:           c.FormValue("city"),
		State:          c.FormValue("state"),
		Description:    c.FormValue("description"),
		Price:          domain.FormNumber(c.FormValue("price")),
		TotalSpace:     domain.FormNumber(c.FormValue("totalSpace")),
		AvailableSpace: domain.FormNumber(c.FormValue("availableSpace")),
	}
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["images"] {
			img, err := readUpload(fh)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid image upload"})
			}
			upd.Images = append(upd.Images, img)
		}
	}

	w, err := h.actions.UpdateWarehouse(c.Context(), middleware.State(c), domain.ID(c.Params("id")), upd)
	if err != nil {
		return h.failed(c, "Failed to update: ", err)
	}
	h.notify(c).Success(MsgWarehouseSaved)
	return c.JSON(w)
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, err
	}
	return domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

type warehouseRef struct {
	WarehouseID domain.ID `json:"warehouseId"`
}

// RequestBooking asks for space from the merchant dashboard.
func (h *ActionsHandler) RequestBooking(c fiber.Ctx) error {
	var body warehouseRef
	if err := c.Bind().JSON(&body); err != nil || body.WarehouseID.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "warehouseId is required"})
	}
	booking, err := h.actions.RequestBooking(c.Context(), middleware.State(c), body.WarehouseID)
	if err != nil {
		return h.failed(c, "Booking failed: ", err)
	}
	h.notify(c).Success(MsgBookingRequested)
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// BookNow is the home page's quick booking. Anonymous clients are sent to
// the login page.
func (h *ActionsHandler) BookNow(c fiber.Ctx) error {
	var body struct {
		warehouseRef
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.WarehouseID.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "warehouseId is required"})
	}

	booking, err := h.actions.BookNow(c.Context(), middleware.State(c), body.WarehouseID)
	if errors.Is(err, port.ErrLoginRequired) {
		h.notify(c).Error(err.Error())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    err.Error(),
			"redirect": service.Redirect{Path: domain.PathLogin},
		})
	}
	if err != nil {
		return h.failed(c, "Booking failed: ", err)
	}

	msg := MsgBookingConfirmed
	if body.Name != "" {
		msg += " for " + body.Name
	}
	h.notify(c).Success(msg)
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ApproveWarehouse approves or disables a warehouse.
func (h *ActionsHandler) ApproveWarehouse(c fiber.Ctx) error {
	var body struct {
		Approve bool `json:"approve"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.actions.ApproveWarehouse(c.Context(), middleware.State(c), domain.ID(c.Params("id")), body.Approve); err != nil {
		return h.failed(c, "", err)
	}
	h.notify(c).Success(MsgWarehouseUpdated)
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminDeleteWarehouse removes any warehouse.
func (h *ActionsHandler) AdminDeleteWarehouse(c fiber.Ctx) error {
	if err := h.actions.AdminDeleteWarehouse(c.Context(), middleware.State(c), domain.ID(c.Params("id"))); err != nil {
		h.notify(c).Error(MsgDeleteFailed)
		return fail(c, err)
	}
	h.notify(c).Success(MsgDeleted)
	return c.SendStatus(fiber.StatusNoContent)
}

// PromoteUser grants a user the admin role.
func (h *ActionsHandler) PromoteUser(c fiber.Ctx) error {
	if err := h.actions.PromoteToAdmin(c.Context(), middleware.State(c), domain.ID(c.Params("id"))); err != nil {
		return h.failed(c, "", err)
	}
	h.notify(c).Success(MsgUserPromoted)
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteUser removes a user account.
func (h *ActionsHandler) DeleteUser(c fiber.Ctx) error {
	if err := h.actions.DeleteUser(c.Context(), middleware.State(c), domain.ID(c.Params("id"))); err != nil {
		return h.failed(c, "", err)
	}
	h.notify(c).Success(MsgUserDeleted)
	return c.SendStatus(fiber.StatusNoContent)
}

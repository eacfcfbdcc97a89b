package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Actions performs the marketplace writes offered on the dashboards.
type Actions struct {
	api port.MarketplaceAPI
}

// NewActions creates the action runner.
func NewActions(api port.MarketplaceAPI) *Actions {
	return &Actions{api: api}
}

// --- Owner ---

// SetBookingStatus approves or rejects a booking and returns the owner's
// refreshed bookings.
func (a *Actions) SetBookingStatus(ctx context.Context, state SessionState, id domain.ID, status string) ([]domain.Booking, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case domain.BookingStatusApproved, domain.BookingStatusRejected, domain.BookingStatusPending:
	default:
		return nil, port.ValidationError(fmt.Errorf("%w: %q", port.ErrUnknownBookingOp, status), nil)
	}
	if err := a.api.UpdateBookingStatus(ctx, state.Token, id, status); err != nil {
		return nil, err
	}
	slog.Info("booking status changed", "booking_id", id, "status", status)

	if state.User == nil || state.User.ID.IsZero() {
		return []domain.Booking{}, nil
	}
	return a.api.OwnerBookings(ctx, state.Token, state.User.ID)
}

// DeleteWarehouse removes one of the owner's warehouses.
func (a *Actions) DeleteWarehouse(ctx context.Context, state SessionState, id domain.ID) error {
	if err := a.api.DeleteWarehouse(ctx, state.Token, id); err != nil {
		return err
	}
	slog.Info("warehouse deleted", "warehouse_id", id)
	return nil
}

// UpdateWarehouse edits one of the owner's warehouses.
func (a *Actions) UpdateWarehouse(ctx context.Context, state SessionState, id domain.ID, upd domain.WarehouseUpdate) (*domain.Warehouse, error) {
	w, err := a.api.UpdateWarehouse(ctx, state.Token, id, upd)
	if err != nil {
		return nil, err
	}
	slog.Info("warehouse updated", "warehouse_id", id, "new_images", len(upd.Images))
	return w, nil
}

// MessageMerchant sends a note to the merchant behind a booking.
func (a *Actions) MessageMerchant(ctx context.Context, state SessionState, msg domain.BookingMessage) error {
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Message == "" || msg.BookingID.IsZero() {
		return port.ValidationError(port.ErrEmptyMessage, nil)
	}
	return a.api.MessageMerchant(ctx, state.Token, msg)
}

// --- Merchant ---

// RequestBooking asks for space in a warehouse.
func (a *Actions) RequestBooking(ctx context.Context, state SessionState, warehouseID domain.ID) (*domain.Booking, error) {
	b, err := a.api.RequestBooking(ctx, state.Token, warehouseID)
	if err != nil {
		return nil, err
	}
	slog.Info("booking requested", "warehouse_id", warehouseID)
	return b, nil
}

// BookNow is the home page's one-click booking. It needs a signed-in client.
func (a *Actions) BookNow(ctx context.Context, state SessionState, warehouseID domain.ID) (*domain.Booking, error) {
	if !state.Authenticated() {
		return nil, port.ValidationError(port.ErrLoginRequired, nil)
	}
	return a.api.BookNow(ctx, state.Token, warehouseID)
}

// --- Admin ---

// ApproveWarehouse approves or disables a warehouse.
func (a *Actions) ApproveWarehouse(ctx context.Context, state SessionState, id domain.ID, approve bool) error {
	return a.api.ApproveWarehouse(ctx, state.Token, id, approve)
}

// AdminDeleteWarehouse removes any warehouse.
func (a *Actions) AdminDeleteWarehouse(ctx context.Context, state SessionState, id domain.ID) error {
	return a.api.AdminDeleteWarehouse(ctx, state.Token, id)
}

// PromoteToAdmin grants a user the admin role.
func (a *Actions) PromoteToAdmin(ctx context.Context, state SessionState, id domain.ID) error {
	return a.api.SetUserRole(ctx, state.Token, id, "admin")
}

// DeleteUser removes a user account.
func (a *Actions) DeleteUser(ctx context.Context, state SessionState, id domain.ID) error {
	return a.api.DeleteUser(ctx, state.Token, id)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

type warehouseRef struct {
	WarehouseID domain.ID `json:"warehouseId"`
}

// BookNow books a warehouse straight from the home page.
func (c *Client) BookNow(ctx context.Context, token string, warehouseID domain.ID) (*domain.Booking, error) {
	var b domain.Booking
	err := c.call(ctx, request{
		method:  http.MethodPost,
		path:    "/book",
		token:   token,
		payload: warehouseRef{WarehouseID: warehouseID},
	}, &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// RequestBooking files a booking request from the merchant dashboard.
func (c *Client) RequestBooking(ctx context.Context, token string, warehouseID domain.ID) (*domain.Booking, error) {
	var b domain.Booking
	err := c.call(ctx, request{
		method:  http.MethodPost,
		path:    "/bookings",
		token:   token,
		payload: warehouseRef{WarehouseID: warehouseID},
	}, &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBooking returns one booking.
func (c *Client) GetBooking(ctx context.Context, token string, id domain.ID) (*domain.Booking, error) {
	var b domain.Booking
	err := c.call(ctx, request{
		method: http.MethodGet,
		path:   pathID("/bookings", id),
		token:  token,
	}, &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBookingStatus moves a booking to status.
func (c *Client) UpdateBookingStatus(ctx context.Context, token string, id domain.ID, status string) error {
	return c.call(ctx, request{
		method:  http.MethodPut,
		path:    pathID("/bookings", id),
		token:   token,
		payload: map[string]string{"status": status},
	}, nil)
}

// MerchantBookings lists a merchant's bookings.
func (c *Client) MerchantBookings(ctx context.Context, token string, merchantID domain.ID) ([]domain.Booking, error) {
	return c.bookingList(ctx, token, pathID("/bookings/merchant", merchantID))
}

// OwnerBookings lists bookings on an owner's warehouses.
func (c *Client) OwnerBookings(ctx context.Context, token string, ownerID domain.ID) ([]domain.Booking, error) {
	return c.bookingList(ctx, token, pathID("/bookings/owner", ownerID))
}

// MessageMerchant sends an owner's note about a booking.
func (c *Client) MessageMerchant(ctx context.Context, token string, msg domain.BookingMessage) error {
	return c.call(ctx, request{
		method:  http.MethodPost,
		path:    "/bookings/message",
		token:   token,
		payload: msg,
	}, nil)
}

func (c *Client) bookingList(ctx context.Context, token, path string) ([]domain.Booking, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: path, token: token})
	if err != nil {
		return nil, err
	}
	bookings, err := decodeList[domain.Booking](data, "bookings")
	if err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

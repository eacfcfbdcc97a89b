package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

// AdminUsers lists every account.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]domain.User, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/admin/users", token: token})
	if err != nil {
		return nil, err
	}
	users, err := decodeList[domain.User](data, "users")
	if err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// AdminWarehouses lists every warehouse, approved or not.
func (c *Client) AdminWarehouses(ctx context.Context, token string) ([]domain.Warehouse, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/admin/warehouses", token: token})
	if err != nil {
		return nil, err
	}
	ws, err := decodeList[domain.Warehouse](data, "warehouses")
	if err != nil {
		return nil, fmt.Errorf("decode warehouses: %w", err)
	}
	return ws, nil
}

// AdminBookings lists every booking.
func (c *Client) AdminBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/admin/bookings", token: token})
	if err != nil {
		return nil, err
	}
	bookings, err := decodeList[domain.Booking](data, "bookings")
	if err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// ApproveWarehouse approves or disables a warehouse.
func (c *Client) ApproveWarehouse(ctx context.Context, token string, id domain.ID, approve bool) error {
	return c.call(ctx, request{
		method:  http.MethodPut,
		path:    pathID("/admin/warehouses", id) + "/approve",
		token:   token,
		payload: map[string]bool{"isApproved": approve},
	}, nil)
}

// AdminDeleteWarehouse removes any warehouse.
func (c *Client) AdminDeleteWarehouse(ctx context.Context, token string, id domain.ID) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   pathID("/admin/warehouses", id),
		token:  token,
	}, nil)
}

// SetUserRole changes a user's legacy role.
func (c *Client) SetUserRole(ctx context.Context, token string, id domain.ID, role string) error {
	return c.call(ctx, request{
		method:  http.MethodPut,
		path:    pathID("/admin/users", id) + "/role",
		token:   token,
		payload: map[string]string{"role": role},
	}, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token string, id domain.ID) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   pathID("/admin/users", id),
		token:  token,
	}, nil)
}

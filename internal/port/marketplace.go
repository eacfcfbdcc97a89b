package port

import (
	"context"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
)

// AuthAPI covers the marketplace's authentication endpoints.
type AuthAPI interface {
	// Register creates an account and returns its first session.
	Register(ctx context.Context, reg domain.Registration) (*domain.Session, error)

	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)

	// Me returns the profile behind token.
	Me(ctx context.Context, token string) (*domain.User, error)
}

// ListingAPI covers the owner's listing drafts.
type ListingAPI interface {
	CreateListing(ctx context.Context, token string, patch domain.ListingPatch) (*domain.ListingDraft, error)
	UpdateListing(ctx context.Context, token string, id domain.ID, patch domain.ListingPatch) (*domain.ListingDraft, error)
	GetListing(ctx context.Context, token string, id domain.ID) (*domain.ListingDraft, error)
	ListMyListings(ctx context.Context, token string) ([]domain.ListingDraft, error)
}

// WarehouseAPI covers public warehouse browsing and owner management.
type WarehouseAPI interface {
	ListWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	SearchWarehouses(ctx context.Context, params domain.SearchParams) ([]domain.Warehouse, error)
	OwnerWarehouses(ctx context.Context, ownerID domain.ID) ([]domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, token string, id domain.ID) error
	UpdateWarehouse(ctx context.Context, token string, id domain.ID, upd domain.WarehouseUpdate) (*domain.Warehouse, error)
}

// BookingAPI covers bookings for merchants and owners.
type BookingAPI interface {
	// BookNow is the one-click booking offered on the home page.
	BookNow(ctx context.Context, token string, warehouseID domain.ID) (*domain.Booking, error)
	RequestBooking(ctx context.Context, token string, warehouseID domain.ID) (*domain.Booking, error)
	GetBooking(ctx context.Context, token string, id domain.ID) (*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, token string, id domain.ID, status string) error
	MerchantBookings(ctx context.Context, token string, merchantID domain.ID) ([]domain.Booking, error)
	OwnerBookings(ctx context.Context, token string, ownerID domain.ID) ([]domain.Booking, error)
	MessageMerchant(ctx context.Context, token string, msg domain.BookingMessage) error
}

// AdminAPI covers the administrator's moderation endpoints.
type AdminAPI interface {
	AdminUsers(ctx context.Context, token string) ([]domain.User, error)
	AdminWarehouses(ctx context.Context, token string) ([]domain.Warehouse, error)
	AdminBookings(ctx context.Context, token string) ([]domain.Booking, error)
	ApproveWarehouse(ctx context.Context, token string, id domain.ID, approve bool) error
	AdminDeleteWarehouse(ctx context.Context, token string, id domain.ID) error
	SetUserRole(ctx context.Context, token string, id domain.ID, role string) error
	DeleteUser(ctx context.Context, token string, id domain.ID) error
}

// MarketplaceAPI is the whole external REST API.
type MarketplaceAPI interface {
	AuthAPI
	ListingAPI
	WarehouseAPI
	BookingAPI
	AdminAPI
}

package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI is an in-memory port.MarketplaceAPI. Unset hooks succeed with
// empty results.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	login         func(domain.Credentials) (*domain.Session, error)
	register      func(domain.Registration) (*domain.Session, error)
	me            func(ctx context.Context, token string) (*domain.User, error)
	createListing func(domain.ListingPatch) (*domain.ListingDraft, error)
	updateListing func(domain.ID, domain.ListingPatch) error
	getListing    func(domain.ID) (*domain.ListingDraft, error)
	listings      func() ([]domain.ListingDraft, error)
	warehouses    func() ([]domain.Warehouse, error)
	ownerWH       func(domain.ID) ([]domain.Warehouse, error)
	ownerBookings func(domain.ID) ([]domain.Booking, error)
	merchantBk    func(domain.ID) ([]domain.Booking, error)
	adminUsers    func() ([]domain.User, error)
	getBooking    func(domain.ID) (*domain.Booking, error)
	updateWH      func(domain.ID, domain.WarehouseUpdate) (*domain.Warehouse, error)

	patches []domain.ListingPatch
	tokens  []string
}

var _ port.MarketplaceAPI = (*fakeAPI)(nil)

func (f *fakeAPI) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.tokens = append(f.tokens, token)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Patches() []domain.ListingPatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ListingPatch(nil), f.patches...)
}

func (f *fakeAPI) Register(_ context.Context, reg domain.Registration) (*domain.Session, error) {
	f.record("Register", "")
	if f.register != nil {
		return f.register(reg)
	}
	return &domain.Session{Token: "tok", User: &domain.User{ID: "1", Name: reg.Name}}, nil
}

func (f *fakeAPI) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	f.record("Login", "")
	if f.login != nil {
		return f.login(creds)
	}
	return &domain.Session{Token: "tok", User: &domain.User{ID: "1", Email: creds.Email}}, nil
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	f.record("Me", token)
	if f.me != nil {
		return f.me(ctx, token)
	}
	return &domain.User{ID: "1"}, nil
}

func (f *fakeAPI) CreateListing(_ context.Context, token string, patch domain.ListingPatch) (*domain.ListingDraft, error) {
	f.record("CreateListing", token)
	if f.createListing != nil {
		return f.createListing(patch)
	}
	return &domain.ListingDraft{ID: "41", Status: domain.ListingStatusDraft}, nil
}

func (f *fakeAPI) UpdateListing(_ context.Context, token string, id domain.ID, patch domain.ListingPatch) (*domain.ListingDraft, error) {
	f.record("UpdateListing", token)
	f.mu.Lock()
	f.patches = append(f.patches, patch)
	f.mu.Unlock()
	if f.updateListing != nil {
		if err := f.updateListing(id, patch); err != nil {
			return nil, err
		}
	}
	return &domain.ListingDraft{ID: id}, nil
}

func (f *fakeAPI) GetListing(_ context.Context, token string, id domain.ID) (*domain.ListingDraft, error) {
	f.record("GetListing", token)
	if f.getListing != nil {
		return f.getListing(id)
	}
	d := domain.NewListingDraft()
	d.ID = id
	return d, nil
}

func (f *fakeAPI) ListMyListings(_ context.Context, token string) ([]domain.ListingDraft, error) {
	f.record("ListMyListings", token)
	if f.listings != nil {
		return f.listings()
	}
	return []domain.ListingDraft{}, nil
}

func (f *fakeAPI) ListWarehouses(context.Context) ([]domain.Warehouse, error) {
	f.record("ListWarehouses", "")
	if f.warehouses != nil {
		return f.warehouses()
	}
	return []domain.Warehouse{}, nil
}

func (f *fakeAPI) SearchWarehouses(_ context.Context, _ domain.SearchParams) ([]domain.Warehouse, error) {
	f.record("SearchWarehouses", "")
	if f.warehouses != nil {
		return f.warehouses()
	}
	return []domain.Warehouse{}, nil
}

func (f *fakeAPI) OwnerWarehouses(_ context.Context, ownerID domain.ID) ([]domain.Warehouse, error) {
	f.record("OwnerWarehouses", "")
	if f.ownerWH != nil {
		return f.ownerWH(ownerID)
	}
	return []domain.Warehouse{}, nil
}

func (f *fakeAPI) DeleteWarehouse(_ context.Context, token string, _ domain.ID) error {
	f.record("DeleteWarehouse", token)
	return nil
}

func (f *fakeAPI) UpdateWarehouse(_ context.Context, token string, id domain.ID, upd domain.WarehouseUpdate) (*domain.Warehouse, error) {
	f.record("UpdateWarehouse", token)
	if f.updateWH != nil {
		return f.updateWH(id, upd)
	}
	return &domain.Warehouse{ID: id, Name: upd.Name}, nil
}

func (f *fakeAPI) BookNow(_ context.Context, token string, id domain.ID) (*domain.Booking, error) {
	f.record("BookNow", token)
	return &domain.Booking{ID: "b1", WarehouseID: id, Status: domain.BookingStatusPending}, nil
}

func (f *fakeAPI) RequestBooking(_ context.Context, token string, id domain.ID) (*domain.Booking, error) {
	f.record("RequestBooking", token)
	return &domain.Booking{ID: "b2", WarehouseID: id, Status: domain.BookingStatusPending}, nil
}

func (f *fakeAPI) GetBooking(_ context.Context, token string, id domain.ID) (*domain.Booking, error) {
	f.record("GetBooking", token)
	if f.getBooking != nil {
		return f.getBooking(id)
	}
	return &domain.Booking{ID: id, Status: domain.BookingStatusPending}, nil
}

func (f *fakeAPI) UpdateBookingStatus(_ context.Context, token string, _ domain.ID, _ string) error {
	f.record("UpdateBookingStatus", token)
	return nil
}

func (f *fakeAPI) MerchantBookings(_ context.Context, token string, id domain.ID) ([]domain.Booking, error) {
	f.record("MerchantBookings", token)
	if f.merchantBk != nil {
		return f.merchantBk(id)
	}
	return []domain.Booking{}, nil
}

func (f *fakeAPI) OwnerBookings(_ context.Context, token string, id domain.ID) ([]domain.Booking, error) {
	f.record("OwnerBookings", token)
	if f.ownerBookings != nil {
		return f.ownerBookings(id)
	}
	return []domain.Booking{}, nil
}

func (f *fakeAPI) MessageMerchant(_ context.Context, token string, _ domain.BookingMessage) error {
	f.record("MessageMerchant", token)
	return nil
}

func (f *fakeAPI) AdminUsers(_ context.Context, token string) ([]domain.User, error) {
	f.record("AdminUsers", token)
	if f.adminUsers != nil {
		return f.adminUsers()
	}
	return []domain.User{}, nil
}

func (f *fakeAPI) AdminWarehouses(_ context.Context, token string) ([]domain.Warehouse, error) {
	f.record("AdminWarehouses", token)
	return []domain.Warehouse{}, nil
}

func (f *fakeAPI) AdminBookings(_ context.Context, token string) ([]domain.Booking, error) {
	f.record("AdminBookings", token)
	return []domain.Booking{}, nil
}

func (f *fakeAPI) ApproveWarehouse(_ context.Context, token string, _ domain.ID, _ bool) error {
	f.record("ApproveWarehouse", token)
	return nil
}

func (f *fakeAPI) AdminDeleteWarehouse(_ context.Context, token string, _ domain.ID) error {
	f.record("AdminDeleteWarehouse", token)
	return nil
}

func (f *fakeAPI) SetUserRole(_ context.Context, token string, _ domain.ID, role string) error {
	f.record("SetUserRole:"+role, token)
	return nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, token string, _ domain.ID) error {
	f.record("DeleteUser", token)
	return nil
}

// memStorage is a map-backed port.ClientStorage.
type memStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, clientID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[clientID+"/"+key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, clientID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[clientID+"/"+key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, clientID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, clientID+"/"+k)
	}
	return nil
}

func (m *memStorage) Close() error { return nil }

// recorder captures toasts and navigations.
type recorder struct {
	mu     sync.Mutex
	toasts []string
	navs   []string
}

func (r *recorder) add(list *[]string, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*list = append(*list, s)
}

func (r *recorder) Success(msg string) { r.add(&r.toasts, "success:"+msg) }
func (r *recorder) Error(msg string)   { r.add(&r.toasts, "error:"+msg) }
func (r *recorder) Info(msg string)    { r.add(&r.toasts, "info:"+msg) }
func (r *recorder) Navigate(p string)  { r.add(&r.navs, "push:"+p) }
func (r *recorder) Replace(p string)   { r.add(&r.navs, "replace:"+p) }

func (r *recorder) Toasts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.toasts...)
}

func (r *recorder) Navs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.navs...)
}

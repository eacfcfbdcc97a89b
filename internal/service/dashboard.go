package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// HomeView is the landing page.
type HomeView struct {
	User            *domain.User       `json:"user"`
	Warehouses      []domain.Warehouse `json:"warehouses"`
	OwnerWarehouses []domain.Warehouse `json:"ownerWarehouses,omitempty"`
}

// SearchView is the search results page.
type SearchView struct {
	Filters []string           `json:"filters"`
	Results []domain.Warehouse `json:"results"`
}

// OwnerView is the warehouse owner's dashboard. Each section loads on its
// own; a failed section is empty and named in Errors.
type OwnerView struct {
	Warehouses     []domain.Warehouse    `json:"warehouses"`
	TotalSpace     float64               `json:"totalSpace"`
	AvailableSpace float64               `json:"availableSpace"`
	Bookings       []domain.Booking      `json:"bookings"`
	Drafts         []domain.ListingDraft `json:"drafts"`
	Errors         []string              `json:"errors,omitempty"`
}

// MerchantView is the merchant's dashboard with the locally filtered catalogue.
type MerchantView struct {
	Bookings   []domain.Booking       `json:"bookings"`
	Warehouses []domain.Warehouse     `json:"warehouses"`
	Filter     domain.WarehouseFilter `json:"filter"`
	Errors     []string               `json:"errors,omitempty"`
}

// AdminView is the administrator's dashboard.
type AdminView struct {
	Users      []domain.User      `json:"users"`
	Warehouses []domain.Warehouse `json:"warehouses"`
	Bookings   []domain.Booking   `json:"bookings"`
}

// BookingView is one booking with its timeline.
type BookingView struct {
	Booking *domain.Booking       `json:"booking"`
	History []domain.StatusChange `json:"history"`
}

// Section load failures reported on dashboards.
const (
	MsgWarehousesFailed = "Failed to load warehouses"
	MsgBookingsFailed   = "Failed to load bookings"
	MsgDraftsFailed     = "Failed to load drafts"
)

// Dashboards builds the read-only views.
type Dashboards struct {
	api port.MarketplaceAPI
}

// NewDashboards creates the view builder.
func NewDashboards(api port.MarketplaceAPI) *Dashboards {
	return &Dashboards{api: api}
}

// Home lists every warehouse, plus the signed-in owner's own.
func (d *Dashboards) Home(ctx context.Context, state SessionState) (*HomeView, error) {
	view := &HomeView{User: state.User}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ws, err := d.api.ListWarehouses(gctx)
		if err != nil {
			return err
		}
		view.Warehouses = ws
		return nil
	})
	if state.User.HasRole(string(domain.RoleWarehouseOwner)) && !state.User.ID.IsZero() {
		g.Go(func() error {
			ws, err := d.api.OwnerWarehouses(gctx, state.User.ID)
			if err != nil {
				slog.Warn("owner warehouses failed", "user_id", state.User.ID, "error", err)
				return nil
			}
			view.OwnerWarehouses = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// Search runs a warehouse search.
func (d *Dashboards) Search(ctx context.Context, params domain.SearchParams) (*SearchView, error) {
	results, err := d.api.SearchWarehouses(ctx, params)
	if err != nil {
		return nil, err
	}
	filters := params.ActiveFilters()
	if filters == nil {
		filters = []string{}
	}
	return &SearchView{Filters: filters, Results: results}, nil
}

// sections collects per-section failures from concurrent loads.
type sections struct {
	mu   sync.Mutex
	errs []string
}

func (s *sections) fail(msg string, err error) {
	slog.Warn("dashboard section failed", "section", msg, "error", err)
	s.mu.Lock()
	s.errs = append(s.errs, msg)
	s.mu.Unlock()
}

// Owner loads the owner's warehouses, bookings and server drafts.
func (d *Dashboards) Owner(ctx context.Context, state SessionState) (*OwnerView, error) {
	view := &OwnerView{
		Warehouses: []domain.Warehouse{},
		Bookings:   []domain.Booking{},
		Drafts:     []domain.ListingDraft{},
	}
	var failed sections

	var g errgroup.Group
	if user := state.User; user != nil && !user.ID.IsZero() {
		g.Go(func() error {
			ws, err := d.api.OwnerWarehouses(ctx, user.ID)
			if err != nil {
				failed.fail(MsgWarehousesFailed, err)
				return nil
			}
			view.Warehouses = ws
			view.TotalSpace, view.AvailableSpace = domain.SpaceTotals(ws)
			return nil
		})
		g.Go(func() error {
			bs, err := d.api.OwnerBookings(ctx, state.Token, user.ID)
			if err != nil {
				failed.fail(MsgBookingsFailed, err)
				return nil
			}
			view.Bookings = bs
			return nil
		})
	}
	g.Go(func() error {
		drafts, err := d.api.ListMyListings(ctx, state.Token)
		if err != nil {
			failed.fail(MsgDraftsFailed, err)
			return nil
		}
		view.Drafts = drafts
		return nil
	})
	_ = g.Wait()

	view.Errors = failed.errs
	return view, nil
}

// Merchant loads the merchant's bookings and the filtered warehouse catalogue.
func (d *Dashboards) Merchant(ctx context.Context, state SessionState, filter domain.WarehouseFilter) (*MerchantView, error) {
	view := &MerchantView{
		Bookings:   []domain.Booking{},
		Warehouses: []domain.Warehouse{},
		Filter:     filter,
	}
	var failed sections

	var g errgroup.Group
	if user := state.User; user != nil && !user.ID.IsZero() {
		g.Go(func() error {
			bs, err := d.api.MerchantBookings(ctx, state.Token, user.ID)
			if err != nil {
				failed.fail(MsgBookingsFailed, err)
				return nil
			}
			view.Bookings = bs
			return nil
		})
	}
	g.Go(func() error {
		ws, err := d.api.ListWarehouses(ctx)
		if err != nil {
			failed.fail(MsgWarehousesFailed, err)
			return nil
		}
		view.Warehouses = domain.FilterWarehouses(ws, filter)
		return nil
	})
	_ = g.Wait()

	view.Errors = failed.errs
	return view, nil
}

// Admin loads users, warehouses and bookings in parallel. Any failure
// fails the whole view.
func (d *Dashboards) Admin(ctx context.Context, state SessionState) (*AdminView, error) {
	view := &AdminView{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := d.api.AdminUsers(gctx, state.Token)
		view.Users = users
		return err
	})
	g.Go(func() error {
		ws, err := d.api.AdminWarehouses(gctx, state.Token)
		view.Warehouses = ws
		return err
	})
	g.Go(func() error {
		bs, err := d.api.AdminBookings(gctx, state.Token)
		view.Bookings = bs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// Booking loads one booking with its status timeline.
func (d *Dashboards) Booking(ctx context.Context, state SessionState, id domain.ID) (*BookingView, error) {
	b, err := d.api.GetBooking(ctx, state.Token, id)
	if err != nil {
		return nil, err
	}
	return &BookingView{Booking: b, History: b.History()}, nil
}

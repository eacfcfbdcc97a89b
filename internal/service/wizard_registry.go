package service

import (
	"context"
	"sync"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// OpenWizard is a client's live wizard with its pending navigation.
type OpenWizard struct {
	Wizard *Wizard
	Nav    *PendingNavigator
}

// WizardRegistry keeps at most one wizard per client.
type WizardRegistry struct {
	api    port.ListingAPI
	toasts *ToastCenter

	mu      sync.Mutex
	wizards map[string]*OpenWizard
}

// NewWizardRegistry creates an empty registry.
func NewWizardRegistry(api port.ListingAPI, toasts *ToastCenter) *WizardRegistry {
	return &WizardRegistry{
		api:     api,
		toasts:  toasts,
		wizards: make(map[string]*OpenWizard),
	}
}

// Open mounts a wizard for editID, or for a new listing when editID is
// empty. Opening a new listing always starts over. Opening an existing
// draft reuses the client's current wizard when it is already saved under
// editID, which keeps the form across the redirect that follows a new
// draft's first save. A wizard that fails to mount is not kept.
func (r *WizardRegistry) Open(ctx context.Context, clientID string, editID domain.ID, token TokenFunc) (*OpenWizard, error) {
	if clientID == "" {
		return nil, port.ErrMissingClientID
	}

	r.mu.Lock()
	if cur, ok := r.wizards[clientID]; ok && sameDraft(cur.Wizard, editID) {
		r.mu.Unlock()
		return cur, nil
	}
	ow := &OpenWizard{Nav: &PendingNavigator{}}
	ow.Wizard = NewWizard(r.api, token, r.toasts.For(clientID), ow.Nav, editID)
	r.wizards[clientID] = ow
	r.mu.Unlock()

	if err := ow.Wizard.Mount(ctx); err != nil {
		r.mu.Lock()
		if r.wizards[clientID] == ow {
			delete(r.wizards, clientID)
		}
		r.mu.Unlock()
		return ow, err
	}
	return ow, nil
}

func sameDraft(w *Wizard, editID domain.ID) bool {
	if editID.IsZero() {
		return false
	}
	id, ok := domain.DraftID(w.Ref())
	return ok && id == editID
}

// Get returns the client's open wizard.
func (r *WizardRegistry) Get(clientID string) (*OpenWizard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ow, ok := r.wizards[clientID]
	if !ok {
		return nil, port.ErrNoWizard
	}
	return ow, nil
}

// Close drops the client's wizard.
func (r *WizardRegistry) Close(clientID string) {
	r.mu.Lock()
	delete(r.wizards, clientID)
	r.mu.Unlock()
}

// Len returns the number of open wizards.
func (r *WizardRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.wizards)
}

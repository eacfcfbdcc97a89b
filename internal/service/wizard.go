package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Wizard messages shown to the owner.
const (
	MsgSessionExpired  = "Session expired. Please login again."
	MsgListingNotFound = "Listing not found"
	MsgNothingToSave   = "Nothing to save"
	MsgSaved           = "Saved"
	MsgSaveFailed      = "Save failed"
	MsgSavedDraft      = "Saved draft"
	MsgPublished       = "Listing published"
	MsgPublishFailed   = "Publish failed"
)

// TokenFunc returns the bearer token to call the API with.
type TokenFunc func() string

// WizardState is a snapshot of a wizard for rendering.
type WizardState struct {
	Step          int                  `json:"step"`
	StepID        domain.WizardStep    `json:"stepId"`
	StepCount     int                  `json:"stepCount"`
	DraftID       domain.ID            `json:"draftId,omitempty"`
	Form          *domain.ListingDraft `json:"form"`
	Loading       bool                 `json:"loading"`
	Saving        bool                 `json:"saving"`
	Publishing    bool                 `json:"publishing"`
	CanPublish    bool                 `json:"canPublish"`
	PublishErrors []string             `json:"publishErrors"`
}

// Wizard drives the multi-step listing editor for one client. The mutex
// guards fields only and is never held across API calls, so overlapping
// saves are not serialized and the last response wins.
type Wizard struct {
	api    port.ListingAPI
	token  TokenFunc
	notify port.Notifier
	nav    port.Navigator
	editID domain.ID
	now    func() time.Time

	mu         sync.Mutex
	form       *domain.ListingDraft
	ref        domain.DraftRef
	step       int
	mounted    bool
	loading    bool
	saving     int
	publishing bool
}

// NewWizard creates a wizard. An empty editID starts a new listing.
func NewWizard(api port.ListingAPI, token TokenFunc, notify port.Notifier, nav port.Navigator, editID domain.ID) *Wizard {
	return &Wizard{
		api:    api,
		token:  token,
		notify: notify,
		nav:    nav,
		editID: editID,
		now:    time.Now,
		form:   domain.NewListingDraft(),
		ref:    domain.Unsaved{},
	}
}

// EditID returns the listing id the wizard was opened for, if any.
func (w *Wizard) EditID() domain.ID {
	return w.editID
}

// Ref returns whether the draft has a server id yet.
func (w *Wizard) Ref() domain.DraftRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ref
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, _ := domain.DraftID(w.ref)
	errs := domain.PublishErrors(w.form)
	if errs == nil {
		errs = []string{}
	}
	return WizardState{
		Step:          w.step,
		StepID:        domain.WizardSteps[w.step],
		StepCount:     len(domain.WizardSteps),
		DraftID:       id,
		Form:          w.form.Clone(),
		Loading:       w.loading,
		Saving:        w.saving > 0,
		Publishing:    w.publishing,
		CanPublish:    len(errs) == 0,
		PublishErrors: errs,
	}
}

// Mount loads the draft being edited. New wizards start from the default
// form. Mount never saves and runs at most once.
func (w *Wizard) Mount(ctx context.Context) error {
	w.mu.Lock()
	if w.mounted {
		w.mu.Unlock()
		return nil
	}
	w.mounted = true
	if w.editID.IsZero() {
		w.mu.Unlock()
		return nil
	}
	w.loading = true
	w.mu.Unlock()

	draft, err := w.api.GetListing(ctx, w.token(), w.editID)

	w.mu.Lock()
	w.loading = false
	if err == nil {
		w.form = draft
		w.ref = domain.Saved{ID: w.editID}
	}
	w.mu.Unlock()

	if err != nil {
		slog.Warn("load listing failed", "listing_id", w.editID, "error", err)
		if apiErr, ok := port.AsAPIError(err); ok && apiErr.AuthFailure() {
			w.notify.Error(MsgSessionExpired)
			w.nav.Navigate(domain.PathLogin)
		} else {
			w.notify.Error(port.MessageOf(err, MsgListingNotFound))
			w.nav.Navigate(domain.PathOwnerDashboard)
		}
		return err
	}
	return nil
}

// Update replaces the working copy of the form.
func (w *Wizard) Update(form *domain.ListingDraft) {
	if form == nil {
		form = domain.NewListingDraft()
	}
	w.mu.Lock()
	w.form = form.Clone()
	w.mu.Unlock()
}

// Next saves and moves forward one step.
func (w *Wizard) Next(ctx context.Context) WizardState {
	w.Save(ctx, domain.SaveNext)
	return w.move(ctx, func(i int) int { return i + 1 })
}

// Back saves and moves back one step.
func (w *Wizard) Back(ctx context.Context) WizardState {
	w.Save(ctx, domain.SaveBack)
	return w.move(ctx, func(i int) int { return i - 1 })
}

// GoTo jumps to step i without a reason save.
func (w *Wizard) GoTo(ctx context.Context, i int) WizardState {
	return w.move(ctx, func(int) int { return i })
}

// move changes the step, clamped to the valid range. A real change
// triggers an autosave. The move stands whatever the saves returned.
func (w *Wizard) move(ctx context.Context, to func(int) int) WizardState {
	w.mu.Lock()
	prev := w.step
	w.step = clampStep(to(prev))
	changed := w.step != prev
	w.mu.Unlock()

	if changed {
		w.Save(ctx, domain.SaveAutosave)
	}
	return w.State()
}

func clampStep(i int) int {
	if i < 0 {
		return 0
	}
	if last := len(domain.WizardSteps) - 1; i > last {
		return last
	}
	return i
}

// Save persists the cleaned form. Failures are reported to the owner and
// returned, but callers moving between steps ignore them.
func (w *Wizard) Save(ctx context.Context, reason domain.SaveReason) error {
	w.mu.Lock()
	w.saving++
	form := w.form.Clone()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.saving--
		w.mu.Unlock()
	}()

	id, err := w.ensureID(ctx)
	if err != nil {
		w.notify.Error(port.MessageOf(err, MsgSaveFailed))
		return err
	}

	patch := domain.CleanPatch(form)
	if patch.IsEmpty() {
		if reason == domain.SaveManual {
			w.notify.Info(MsgNothingToSave)
		}
		return nil
	}

	if _, err := w.api.UpdateListing(ctx, w.token(), id, patch); err != nil {
		slog.Warn("save listing failed", "listing_id", id, "reason", reason, "error", err)
		w.notify.Error(port.MessageOf(err, MsgSaveFailed))
		return err
	}
	if reason == domain.SaveManual {
		w.notify.Success(MsgSaved)
	}
	return nil
}

// Exit leaves the wizard without saving.
func (w *Wizard) Exit() {
	w.notify.Info(MsgSavedDraft)
	w.nav.Navigate(domain.PathOwnerDashboard)
}

// Publish validates the form and publishes it. An incomplete form is
// refused before any request is made.
func (w *Wizard) Publish(ctx context.Context) error {
	w.mu.Lock()
	if errs := domain.PublishErrors(w.form); len(errs) > 0 {
		w.mu.Unlock()
		return port.ValidationError(port.ErrPublishBlocked, errs)
	}
	w.publishing = true
	form := w.form.Clone()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.publishing = false
		w.mu.Unlock()
	}()

	id, err := w.ensureID(ctx)
	if err == nil {
		patch := domain.CleanPatch(form)
		patch.Status = domain.ListingStatusPublished
		_, err = w.api.UpdateListing(ctx, w.token(), id, patch)
	}
	if err != nil {
		slog.Warn("publish listing failed", "listing_id", id, "error", err)
		w.notify.Error(port.MessageOf(err, MsgPublishFailed))
		return err
	}

	slog.Info("listing published", "listing_id", id)
	w.notify.Success(MsgPublished)
	w.nav.Navigate(domain.PathOwnerDashboard)
	return nil
}

// ensureID returns the draft's server id, creating a placeholder record
// on first use and moving the client to the draft's edit route.
func (w *Wizard) ensureID(ctx context.Context) (domain.ID, error) {
	w.mu.Lock()
	ref := w.ref
	w.mu.Unlock()

	if id, ok := domain.DraftID(ref); ok {
		return id, nil
	}

	title := "Draft " + w.now().Format("1/2/2006, 3:04:05 PM")
	created, err := w.api.CreateListing(ctx, w.token(), domain.PlaceholderDraft(title))
	if err != nil {
		return "", err
	}
	if created == nil || created.ID.IsZero() {
		return "", port.ErrMissingDraftID
	}

	w.mu.Lock()
	w.ref = domain.Saved{ID: created.ID}
	w.mu.Unlock()

	slog.Info("listing draft created", "listing_id", created.ID)
	w.nav.Replace(domain.ListingEditPath(created.ID))
	return created.ID, nil
}

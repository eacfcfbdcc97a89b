package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Client storage keys owned by the auth store.
const (
	KeyToken       = "token"
	KeyUser        = "auth_user"
	KeyLegacyToken = "auth_token"
	KeyLegacyUser  = "user"
)

var authKeys = []string{KeyToken, KeyUser, KeyLegacyToken, KeyLegacyUser}

// SessionState is a point-in-time copy of a client's authentication state.
type SessionState struct {
	Token   string       `json:"-"`
	User    *domain.User `json:"user"`
	Loading bool         `json:"loading"`
}

// Authenticated reports whether a token is present.
func (s SessionState) Authenticated() bool {
	return s.Token != ""
}

// MarshalJSON reports whether a token is held without exposing it.
func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Authenticated bool         `json:"authenticated"`
		User          *domain.User `json:"user"`
		Loading       bool         `json:"loading"`
	}{s.Authenticated(), s.User, s.Loading})
}

// AuthStore is the single authority over one client's token and profile.
// State changes are persisted to client storage and broadcast to subscribers.
type AuthStore struct {
	clientID string
	storage  port.ClientStorage
	api      port.AuthAPI

	// persistMu orders storage writes the same way as state changes.
	persistMu sync.Mutex

	mu      sync.Mutex
	state   SessionState
	gen     uint64
	subs    map[int]chan SessionState
	nextSub int
	closed  bool

	autoRefresh bool
	bgCtx       context.Context
	bgCancel    context.CancelFunc
	wg          sync.WaitGroup
}

// NewAuthStore creates an empty store for clientID. Call Hydrate to load
// the persisted session. With autoRefresh, every new token is verified in
// the background by Bootstrap.
func NewAuthStore(clientID string, storage port.ClientStorage, api port.AuthAPI, autoRefresh bool) *AuthStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &AuthStore{
		clientID:    clientID,
		storage:     storage,
		api:         api,
		subs:        make(map[int]chan SessionState),
		autoRefresh: autoRefresh,
		bgCtx:       ctx,
		bgCancel:    cancel,
	}
}

// ClientID returns the client the store belongs to.
func (s *AuthStore) ClientID() string {
	return s.clientID
}

// Snapshot returns a copy of the current state.
func (s *AuthStore) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyState()
}

func (s *AuthStore) copyState() SessionState {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Hydrate loads the persisted session. The legacy keys are read when the
// current ones are absent. A profile without a token is discarded.
func (s *AuthStore) Hydrate(ctx context.Context) error {
	token, err := s.read(ctx, KeyToken, KeyLegacyToken)
	if err != nil {
		return err
	}
	rawUser, err := s.read(ctx, KeyUser, KeyLegacyUser)
	if err != nil {
		return err
	}

	var user *domain.User
	if token != "" && rawUser != "" {
		var u domain.User
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
			slog.Warn("discarding unreadable stored profile", "client_id", s.clientID, "error", err)
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	s.state = SessionState{Token: token, User: user}
	snap := s.copyState()
	s.mu.Unlock()

	s.broadcast(snap)
	if token != "" {
		s.refresh()
	}
	return nil
}

func (s *AuthStore) read(ctx context.Context, keys ...string) (string, error) {
	for _, k := range keys {
		v, ok, err := s.storage.Get(ctx, s.clientID, k)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", k, err)
		}
		if ok && v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Login replaces the session with token and user and persists both.
func (s *AuthStore) Login(ctx context.Context, session domain.Session) error {
	if !session.Valid() {
		return port.ErrInvalidSession
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	s.state = SessionState{Token: session.Token, User: session.User}
	snap := s.copyState()
	s.mu.Unlock()

	s.broadcast(snap)
	if err := s.persist(ctx, session); err != nil {
		return err
	}
	if session.Token != "" {
		s.refresh()
	}
	return nil
}

func (s *AuthStore) persist(ctx context.Context, session domain.Session) error {
	if err := s.storage.Remove(ctx, s.clientID, KeyLegacyToken, KeyLegacyUser); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if session.Token == "" {
		return s.storage.Remove(ctx, s.clientID, KeyToken, KeyUser)
	}
	if err := s.storage.Set(ctx, s.clientID, KeyToken, session.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if session.User == nil {
		return s.storage.Remove(ctx, s.clientID, KeyUser)
	}
	return s.persistUser(ctx, session.User)
}

func (s *AuthStore) persistUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.storage.Set(ctx, s.clientID, KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

// SignIn exchanges credentials for a session and logs in with it.
func (s *AuthStore) SignIn(ctx context.Context, creds domain.Credentials) (SessionState, error) {
	session, err := s.api.Login(ctx, creds)
	if err != nil {
		return SessionState{}, err
	}
	if err := s.Login(ctx, *session); err != nil {
		return SessionState{}, err
	}
	return s.Snapshot(), nil
}

// Register creates an account and logs in with the returned session.
// At least one role is required.
func (s *AuthStore) Register(ctx context.Context, reg domain.Registration) (SessionState, error) {
	if len(reg.Roles) == 0 {
		return SessionState{}, port.ValidationError(port.ErrRoleRequired, nil)
	}
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return SessionState{}, port.ValidationError(port.ErrFieldsRequired, nil)
	}
	session, err := s.api.Register(ctx, reg)
	if err != nil {
		return SessionState{}, err
	}
	if err := s.Login(ctx, *session); err != nil {
		return SessionState{}, err
	}
	return s.Snapshot(), nil
}

// Logout clears the session and every auth key in storage.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.gen++
	s.state = SessionState{}
	snap := s.copyState()
	closed := s.closed
	s.mu.Unlock()

	if !closed {
		s.broadcast(snap)
	}
	if err := s.storage.Remove(ctx, s.clientID, authKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Bootstrap verifies the stored token against the API. Success refreshes
// the profile; any failure clears the session. The result is dropped when
// the session changed while the request was in flight or ctx was cancelled.
func (s *AuthStore) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.state.Token == "" {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	token := s.state.Token
	s.state.Loading = true
	snap := s.copyState()
	s.mu.Unlock()
	s.broadcast(snap)

	user, err := s.api.Me(ctx, token)

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.closed || s.gen != gen {
		s.mu.Unlock()
		slog.Debug("dropping stale session refresh", "client_id", s.clientID)
		return nil
	}
	if ctx.Err() != nil {
		s.state.Loading = false
		snap = s.copyState()
		s.mu.Unlock()
		s.broadcast(snap)
		return nil
	}
	if err != nil {
		s.gen++
		s.state = SessionState{}
		snap = s.copyState()
		s.mu.Unlock()
		s.broadcast(snap)

		slog.Info("session rejected, signing out", "client_id", s.clientID, "error", err)
		if rmErr := s.storage.Remove(ctx, s.clientID, authKeys...); rmErr != nil {
			return fmt.Errorf("clear session: %w", rmErr)
		}
		return err
	}
	s.state.User = user
	s.state.Loading = false
	snap = s.copyState()
	s.mu.Unlock()
	s.broadcast(snap)

	return s.persistUser(ctx, user)
}

// refresh runs Bootstrap in the background when enabled.
func (s *AuthStore) refresh() {
	if !s.autoRefresh {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		if err := s.Bootstrap(s.bgCtx); err != nil {
			slog.Debug("background session refresh failed", "client_id", s.clientID, "error", err)
		}
	}()
}

// Subscribe returns a channel receiving every subsequent state change and a
// func to stop receiving. Updates are dropped for subscribers that fall behind.
func (s *AuthStore) Subscribe() (<-chan SessionState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan SessionState, 8)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *AuthStore) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *AuthStore) broadcast(st SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

// Close stops background work, drops any in-flight refresh and closes
// subscriber channels. Persisted state is kept.
func (s *AuthStore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.gen++
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()

	s.bgCancel()
	s.wg.Wait()
}

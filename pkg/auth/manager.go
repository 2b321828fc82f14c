package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/basekit/pkg/storage"
)

// refreshTimeout bounds the background network call made by the silent
// refresh timer, which runs without a caller-supplied context.
const refreshTimeout = 30 * time.Second

// Manager owns the single current-session slot and everything attached to
// it: persistence, the silent refresh timer, and listener notification.
// Multiple Manager instances are fully independent.
//
// The slot is guarded by a mutex for memory safety only. Concurrent sign-ins
// are not serialized against each other: the last write wins, both in memory
// and in the persisted record. Callers that need exactly-once semantics must
// serialize externally.
type Manager struct {
	api       API
	store     storage.Store
	config    Config
	logger    *slog.Logger
	listeners *listenerRegistry
	scheduler *refreshScheduler

	mu      sync.RWMutex
	session *Session
}

// New creates a session manager. Without WithStore the manager falls back to
// an in-memory store, so sessions do not survive restarts.
func New(opts ...Option) *Manager {
	m := &Manager{
		config:    DefaultConfig(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		listeners: newListenerRegistry(),
		scheduler: &refreshScheduler{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = storage.NewMemoryStore()
	}

	return m
}

// SignUp registers a new account and installs the returned session as
// current, emitting SIGNED_IN.
func (m *Manager) SignUp(ctx context.Context, creds Credentials) (*Session, error) {
	if m.api == nil {
		return nil, ErrNoAPI
	}

	session, err := m.api.SignUp(ctx, creds)
	if err != nil {
		return nil, err
	}

	m.installSession(ctx, session, EventSignedIn, true)
	return session, nil
}

// SignInWithPassword authenticates with email/password credentials and
// installs the returned session as current, emitting SIGNED_IN.
func (m *Manager) SignInWithPassword(ctx context.Context, creds Credentials) (*Session, error) {
	if m.api == nil {
		return nil, ErrNoAPI
	}

	session, err := m.api.SignIn(ctx, creds)
	if err != nil {
		return nil, err
	}

	m.installSession(ctx, session, EventSignedIn, true)
	return session, nil
}

// SignOut clears the current session, cancels the pending refresh timer,
// removes the persisted record, and emits SIGNED_OUT. The local state is
// always cleared; only a storage removal failure is reported.
func (m *Manager) SignOut(ctx context.Context) error {
	m.scheduler.disarm()

	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()

	var removeErr error
	if err := m.store.Remove(ctx, m.config.StorageKey); err != nil {
		removeErr = errors.Join(ErrSignOut, err)
	}

	m.listeners.notify(EventSignedOut, nil)
	return removeErr
}

// Session returns the current in-memory session, or nil. Never touches the
// network.
func (m *Manager) Session() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// User returns the current in-memory user, or nil. Never touches the network.
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	return m.session.User
}

// AccessToken returns the bearer token of the current session, or an empty
// string. This is the integration point the transport layer uses to
// authorize outgoing requests.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.AccessToken
}

// UpdateUser patches the current user record via the backend, merges the
// result into the current session if one exists, re-persists it, and emits
// USER_UPDATED.
func (m *Manager) UpdateUser(ctx context.Context, attrs UserAttributes) (*User, error) {
	if m.api == nil {
		return nil, ErrNoAPI
	}

	user, err := m.api.UpdateUser(ctx, attrs)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	var merged *Session
	if m.session != nil {
		m.session.User = user
		merged = m.session
	}
	m.mu.Unlock()

	if merged != nil {
		m.persist(ctx, merged)
		m.listeners.notify(EventUserUpdated, merged)
	}

	return user, nil
}

// RefreshSession exchanges the current refresh token for a new session.
// On success the new session replaces the old one and TOKEN_REFRESHED is
// emitted. On failure the manager fails closed: the session is cleared as if
// signed out, and the error is returned.
func (m *Manager) RefreshSession(ctx context.Context) (*Session, error) {
	if m.api == nil {
		return nil, ErrNoAPI
	}

	m.mu.RLock()
	current := m.session
	m.mu.RUnlock()

	if current == nil {
		return nil, ErrNoSession
	}
	if current.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	session, err := m.api.Refresh(ctx, current.RefreshToken)
	if err != nil {
		// Fail-closed: an unrenewable session is treated as no session.
		m.logger.WarnContext(ctx, "token refresh failed, signing out", slog.Any("error", err))
		_ = m.SignOut(ctx)
		return nil, err
	}

	m.installSession(ctx, session, EventTokenRefreshed, true)
	return session, nil
}

// OnAuthStateChange registers a listener and immediately replays the current
// state to it (SIGNED_IN with the session, or SIGNED_OUT with nil) before
// returning, so consumers can initialize without a separate query. The
// returned function unsubscribes the listener.
func (m *Manager) OnAuthStateChange(l Listener) (unsubscribe func()) {
	key := m.listeners.add(l)

	m.mu.RLock()
	current := m.session
	m.mu.RUnlock()

	if current != nil {
		l.OnAuthStateChange(EventSignedIn, current)
	} else {
		l.OnAuthStateChange(EventSignedOut, nil)
	}

	return func() {
		m.listeners.remove(key)
	}
}

// Restore recovers a previously persisted session from the store, installs
// it, arms the refresh timer, and emits INITIAL_SESSION. A missing or
// unparseable record is equivalent to no session; failures are never
// surfaced.
func (m *Manager) Restore(ctx context.Context) {
	value, err := m.store.Get(ctx, m.config.StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			m.logger.DebugContext(ctx, "session restore failed", slog.Any("error", err))
		}
		return
	}

	var session Session
	if err := json.Unmarshal([]byte(value), &session); err != nil || !session.Valid() {
		m.logger.DebugContext(ctx, "persisted session record is not usable, ignoring")
		return
	}

	m.installSession(ctx, &session, EventInitialSession, false)
}

// installSession makes session the current one, optionally re-persisting it,
// arms the refresh timer, and notifies listeners with the given event.
func (m *Manager) installSession(ctx context.Context, session *Session, event Event, persist bool) {
	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	if persist {
		m.persist(ctx, session)
	}

	m.armRefresh(session)
	m.listeners.notify(event, session)
}

// persist writes the session record through to the store. Write-through is
// best effort: a failure is logged, never surfaced to the caller.
func (m *Manager) persist(ctx context.Context, session *Session) {
	data, err := json.Marshal(session)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to serialize session", slog.Any("error", err))
		return
	}
	if err := m.store.Set(ctx, m.config.StorageKey, string(data)); err != nil {
		m.logger.WarnContext(ctx, "failed to persist session", slog.Any("error", err))
	}
}

// armRefresh schedules the silent refresh for the given session. No timer is
// armed for sessions without a refresh token or without a determinable
// expiry. Arming replaces any previously pending timer.
func (m *Manager) armRefresh(session *Session) {
	if !m.config.AutoRefresh || session == nil || session.RefreshToken == "" {
		return
	}

	ttl, ok := session.TimeToExpiry(time.Now())
	if !ok {
		return
	}

	delay := ttl - m.config.RefreshMargin
	if delay < 0 {
		delay = 0
	}

	// The timer captures the token it was armed for. If the slot changed by
	// the time it fires (sign-out, another sign-in), the callback is stale
	// and must not refresh.
	armedFor := session.AccessToken
	m.scheduler.arm(delay, func() {
		m.onRefreshTimer(armedFor)
	})
}

// onRefreshTimer runs on the timer goroutine when the refresh delay elapses.
func (m *Manager) onRefreshTimer(armedFor string) {
	m.mu.RLock()
	current := m.session
	m.mu.RUnlock()

	// The slot may have been cleared or replaced after the timer fired but
	// before this callback ran.
	if current == nil || current.AccessToken != armedFor || current.RefreshToken == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	// RefreshSession handles both outcomes: success re-arms the timer for
	// the new expiry, failure signs out.
	_, _ = m.RefreshSession(ctx)
}

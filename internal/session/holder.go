package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/keystore"
	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
	"github.com/curanet/careadm/pkg/logger"
)

// State is the session lifecycle position.
type State int

const (
	// Unauthenticated means no usable token is persisted.
	Unauthenticated State = iota
	// ProfileLoading means a valid token exists but the profile has not
	// loaded yet. The session is treated as authenticated so a restart
	// does not bounce the user to the login screen.
	ProfileLoading
	// Authenticated means the token is valid and the profile is loaded.
	Authenticated
)

// AuthAPI is the slice of the backend client the holder needs.
type AuthAPI interface {
	Login(ctx context.Context, input api.LoginInput) (string, error)
	Profile(ctx context.Context) (*api.User, error)
}

// Holder is the single source of truth for who is logged in and with what
// role, derived from the persisted bearer token plus a fetched profile.
type Holder struct {
	store   *keystore.Store
	authAPI AuthAPI
	logg    *logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	user     *api.User
	onLogout func()
}

// NewHolder builds a session holder over the keystore and auth API.
func NewHolder(store *keystore.Store, authAPI AuthAPI, logg *logger.Logger) (*Holder, error) {
	if store == nil {
		return nil, fmt.Errorf("keystore required")
	}
	if authAPI == nil {
		return nil, fmt.Errorf("auth api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Holder{
		store:   store,
		authAPI: authAPI,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// SetLogoutHook registers the callback fired after the session is cleared,
// typically to navigate back to the login surface.
func (h *Holder) SetLogoutHook(hook func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onLogout = hook
}

// Token returns the persisted bearer token, or "".
func (h *Holder) Token() string {
	token, err := h.store.Get(keystore.KeyAuthToken)
	if err != nil {
		h.logg.Error(context.Background(), "reading persisted token", err)
		return ""
	}
	return token
}

// Login submits credentials and persists the returned token. The profile
// load happens separately through Reconcile, so callers decide whether it
// runs in the foreground or behind the UI. A failed login never persists
// anything. Two overlapping Login calls are not serialized.
func (h *Holder) Login(ctx context.Context, input api.LoginInput) error {
	token, err := h.authAPI.Login(ctx, input)
	if err != nil {
		return err
	}
	if err := h.store.Set(keystore.KeyAuthToken, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist token")
	}
	h.mu.Lock()
	h.user = nil
	h.mu.Unlock()
	h.logg.Info(ctx, "login succeeded")
	return nil
}

// Logout clears all persisted session data and in-memory state, then fires
// the logout hook. It needs no network call and is idempotent.
func (h *Holder) Logout() {
	if err := h.store.ClearSession(); err != nil {
		h.logg.Error(context.Background(), "clearing persisted session", err)
	}
	h.mu.Lock()
	h.user = nil
	hook := h.onLogout
	h.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// IsTokenExpired reports whether the persisted token is absent, malformed,
// or past its exp claim.
func (h *Holder) IsTokenExpired() bool {
	return TokenExpired(h.Token(), h.now())
}

// IsAuthenticated is a pure read: a non-expired persisted token is present.
// It has no side effects; reconciliation is explicit.
func (h *Holder) IsAuthenticated() bool {
	return !h.IsTokenExpired()
}

// State derives the lifecycle position from the token and loaded profile.
func (h *Holder) State() State {
	if !h.IsAuthenticated() {
		return Unauthenticated
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.user == nil {
		return ProfileLoading
	}
	return Authenticated
}

// Reconcile brings in-memory state in line with persisted storage: an
// expired token forces logout, a valid token without a loaded profile
// triggers a profile fetch. A transient fetch failure while the token is
// still valid keeps the session authenticated; only expiry or a backend
// rejection evicts the user.
func (h *Holder) Reconcile(ctx context.Context) error {
	token := h.Token()
	if token == "" {
		return nil
	}
	if TokenExpired(token, h.now()) {
		h.logg.Warn(ctx, "token expired, forcing logout")
		h.Logout()
		return nil
	}

	user, err := h.authAPI.Profile(ctx)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			h.logg.Warn(ctx, "profile load rejected, forcing logout")
			h.Logout()
			return nil
		}
		// Transient backend trouble must not evict a user with a valid
		// token.
		h.logg.Error(ctx, "profile load failed, keeping session", err)
		return nil
	}

	h.mu.Lock()
	h.user = user
	h.mu.Unlock()
	return nil
}

// CurrentUser returns the last successfully loaded profile, or nil.
func (h *Holder) CurrentUser() *api.User {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.user == nil {
		return nil
	}
	copied := *h.user
	return &copied
}

// Role returns the profile role, or "" while no profile is loaded.
func (h *Holder) Role() enums.Role {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.user == nil {
		return ""
	}
	return h.user.Role
}

func (h *Holder) IsSuperAdmin() bool {
	return h.Role() == enums.RoleSuperAdmin
}

func (h *Holder) IsManager() bool {
	return h.Role() == enums.RoleManager
}

func (h *Holder) IsProfessional() bool {
	return h.Role() == enums.RoleProfessional
}

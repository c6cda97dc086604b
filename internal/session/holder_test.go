package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/keystore"
	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
	"github.com/curanet/careadm/pkg/logger"
)

type fakeAuthAPI struct {
	loginToken string
	loginErr   error
	user       *api.User
	profileErr error

	loginCalls   int
	profileCalls int
}

func (f *fakeAuthAPI) Login(_ context.Context, _ api.LoginInput) (string, error) {
	f.loginCalls++
	return f.loginToken, f.loginErr
}

func (f *fakeAuthAPI) Profile(_ context.Context) (*api.User, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.user, nil
}

func newTestHolder(t *testing.T, authAPI *fakeAuthAPI) (*Holder, *keystore.Store) {
	t.Helper()
	store, err := keystore.Open(filepath.Join(t.TempDir(), "careadm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	holder, err := NewHolder(store, authAPI, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return holder, store
}

func validToken(t *testing.T) string {
	return signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix(), "sub": "user-1"})
}

func expiredToken(t *testing.T) string {
	return signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix(), "sub": "user-1"})
}

func TestLoginPersistsTokenAndEntersProfileLoading(t *testing.T) {
	authAPI := &fakeAuthAPI{loginToken: validToken(t)}
	holder, store := newTestHolder(t, authAPI)

	err := holder.Login(context.Background(), api.LoginInput{Email: "a@b.example", Password: "pw"})
	require.NoError(t, err)

	persisted, err := store.Get(keystore.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, authAPI.loginToken, persisted)
	assert.Equal(t, ProfileLoading, holder.State())
	assert.True(t, holder.IsAuthenticated())
}

func TestLoginFailureNeverPersistsToken(t *testing.T) {
	authAPI := &fakeAuthAPI{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "bad credentials")}
	holder, store := newTestHolder(t, authAPI)

	err := holder.Login(context.Background(), api.LoginInput{Email: "a@b.example", Password: "nope"})
	require.Error(t, err)

	persisted, err := store.Get(keystore.KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.Equal(t, Unauthenticated, holder.State())
}

func TestReconcileLoadsProfile(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginToken: validToken(t),
		user:       &api.User{ID: "u1", Role: enums.RoleManager},
	}
	holder, _ := newTestHolder(t, authAPI)

	require.NoError(t, holder.Login(context.Background(), api.LoginInput{Email: "a@b.example", Password: "pw"}))
	require.NoError(t, holder.Reconcile(context.Background()))

	assert.Equal(t, Authenticated, holder.State())
	assert.True(t, holder.IsManager())
	assert.False(t, holder.IsSuperAdmin())
	require.NotNil(t, holder.CurrentUser())
	assert.Equal(t, "u1", holder.CurrentUser().ID)
}

func TestReconcileKeepsSessionOnTransientProfileFailure(t *testing.T) {
	authAPI := &fakeAuthAPI{
		user:       &api.User{ID: "u1", Role: enums.RoleManager},
		profileErr: pkgerrors.New(pkgerrors.CodeUnavailable, "backend down"),
	}
	holder, store := newTestHolder(t, authAPI)
	require.NoError(t, store.Set(keystore.KeyAuthToken, validToken(t)))

	require.NoError(t, holder.Reconcile(context.Background()))

	assert.True(t, holder.IsAuthenticated(), "a valid token survives transient backend failure")
	assert.Equal(t, ProfileLoading, holder.State())
}

func TestReconcileForcesLogoutOnExpiredToken(t *testing.T) {
	authAPI := &fakeAuthAPI{}
	holder, store := newTestHolder(t, authAPI)
	require.NoError(t, store.Set(keystore.KeyAuthToken, expiredToken(t)))

	require.NoError(t, holder.Reconcile(context.Background()))

	assert.False(t, holder.IsAuthenticated())
	assert.Equal(t, Unauthenticated, holder.State())
	assert.Zero(t, authAPI.profileCalls, "expired token must not hit the backend")

	persisted, err := store.Get(keystore.KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestReconcileForcesLogoutOnBackendRejection(t *testing.T) {
	authAPI := &fakeAuthAPI{profileErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "token revoked")}
	holder, store := newTestHolder(t, authAPI)
	require.NoError(t, store.Set(keystore.KeyAuthToken, validToken(t)))

	require.NoError(t, holder.Reconcile(context.Background()))
	assert.Equal(t, Unauthenticated, holder.State())
}

func TestLogoutClearsEverythingAndFiresHook(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginToken: validToken(t),
		user:       &api.User{ID: "u1", Role: enums.RoleProfessional},
	}
	holder, store := newTestHolder(t, authAPI)
	require.NoError(t, holder.Login(context.Background(), api.LoginInput{Email: "a@b.example", Password: "pw"}))
	require.NoError(t, holder.Reconcile(context.Background()))
	require.NoError(t, store.Set(keystore.KeySelectedResidenceID, "res-1"))

	fired := 0
	holder.SetLogoutHook(func() { fired++ })

	holder.Logout()

	assert.Equal(t, 1, fired)
	assert.Equal(t, Unauthenticated, holder.State())
	assert.Nil(t, holder.CurrentUser())

	token, err := store.Get(keystore.KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, token)
	residence, err := store.Get(keystore.KeySelectedResidenceID)
	require.NoError(t, err)
	assert.Empty(t, residence)
}

func TestLogoutIsIdempotent(t *testing.T) {
	holder, store := newTestHolder(t, &fakeAuthAPI{})

	holder.Logout()
	holder.Logout()

	token, err := store.Get(keystore.KeyAuthToken)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRolePredicatesWithoutProfile(t *testing.T) {
	holder, _ := newTestHolder(t, &fakeAuthAPI{})
	assert.False(t, holder.IsSuperAdmin())
	assert.False(t, holder.IsManager())
	assert.False(t, holder.IsProfessional())
}

package residence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/keystore"
	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
	"github.com/curanet/careadm/pkg/logger"
)

type fakeResidenceAPI struct {
	visible []api.Residence
	err     error
}

func (f *fakeResidenceAPI) VisibleResidences(_ context.Context) ([]api.Residence, error) {
	return f.visible, f.err
}

func newTestContext(t *testing.T, resAPI *fakeResidenceAPI) (*Context, *keystore.Store) {
	t.Helper()
	store, err := keystore.Open(filepath.Join(t.TempDir(), "careadm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	rc, err := NewContext(store, resAPI, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return rc, store
}

func residences(ids ...string) []api.Residence {
	out := make([]api.Residence, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.Residence{ID: id, Name: "Residence " + id})
	}
	return out
}

func TestLoadAutoSelectsSoleResidence(t *testing.T) {
	rc, store := newTestContext(t, &fakeResidenceAPI{visible: residences("res-1")})

	require.NoError(t, rc.Load(context.Background()))

	assert.Equal(t, "res-1", rc.SelectedID())
	assert.False(t, rc.NeedsSelection(enums.RoleManager))

	persisted, err := store.Get(keystore.KeySelectedResidenceID)
	require.NoError(t, err)
	assert.Equal(t, "res-1", persisted)
}

func TestLoadKeepsExistingSelection(t *testing.T) {
	rc, store := newTestContext(t, &fakeResidenceAPI{visible: residences("res-1")})
	require.NoError(t, store.Set(keystore.KeySelectedResidenceID, "res-7"))

	require.NoError(t, rc.Load(context.Background()))
	assert.Equal(t, "res-7", rc.SelectedID())
}

func TestNeedsSelectionForMultiResidenceManager(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{visible: residences("res-1", "res-2")})
	require.NoError(t, rc.Load(context.Background()))

	assert.True(t, rc.NeedsSelection(enums.RoleManager))
	assert.True(t, rc.NeedsSelection(enums.RoleProfessional))

	require.NoError(t, rc.Select("res-2"))
	assert.False(t, rc.NeedsSelection(enums.RoleManager))
}

func TestSuperAdminNeverNeedsSelection(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{visible: residences("res-1", "res-2", "res-3")})
	require.NoError(t, rc.Load(context.Background()))

	assert.False(t, rc.NeedsSelection(enums.RoleSuperAdmin))
}

func TestZeroVisibleResidencesPassesGate(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{visible: nil})
	require.NoError(t, rc.Load(context.Background()))

	assert.False(t, rc.NeedsSelection(enums.RoleManager))
}

func TestSelectedReturnsRowFromVisibleList(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{visible: residences("res-1", "res-2")})
	require.NoError(t, rc.Load(context.Background()))
	require.NoError(t, rc.Select("res-2"))

	selected := rc.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "Residence res-2", selected.Name)
}

func TestSelectRejectsEmptyID(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{})
	err := rc.Select("  ")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestClearDropsSelection(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{visible: residences("res-1", "res-2")})
	require.NoError(t, rc.Load(context.Background()))
	require.NoError(t, rc.Select("res-1"))

	require.NoError(t, rc.Clear())
	assert.Empty(t, rc.SelectedID())
	assert.True(t, rc.NeedsSelection(enums.RoleManager))
}

func TestLoadPropagatesBackendError(t *testing.T) {
	rc, _ := newTestContext(t, &fakeResidenceAPI{err: pkgerrors.New(pkgerrors.CodeUnavailable, "down")})
	err := rc.Load(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnavailable))
}

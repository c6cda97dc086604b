package residence

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/curanet/careadm/internal/api"
	"github.com/curanet/careadm/internal/keystore"
	"github.com/curanet/careadm/pkg/enums"
	pkgerrors "github.com/curanet/careadm/pkg/errors"
	"github.com/curanet/careadm/pkg/logger"
)

// ResidenceAPI is the slice of the backend client the context needs.
type ResidenceAPI interface {
	VisibleResidences(ctx context.Context) ([]api.Residence, error)
}

// Context tracks which residences the session may operate on and which one
// is active. Every residence-scoped request reads the active selection.
type Context struct {
	store  *keystore.Store
	resAPI ResidenceAPI
	logg   *logger.Logger

	mu      sync.Mutex
	visible []api.Residence
}

// NewContext builds a residence context over the keystore and backend.
func NewContext(store *keystore.Store, resAPI ResidenceAPI, logg *logger.Logger) (*Context, error) {
	if store == nil {
		return nil, fmt.Errorf("keystore required")
	}
	if resAPI == nil {
		return nil, fmt.Errorf("residence api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Context{store: store, resAPI: resAPI, logg: logg}, nil
}

// Load refreshes the visible residence list. A session with exactly one
// visible residence gets it selected without prompting.
func (c *Context) Load(ctx context.Context) error {
	visible, err := c.resAPI.VisibleResidences(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.visible = visible
	c.mu.Unlock()

	if len(visible) == 1 && c.SelectedID() == "" {
		if err := c.Select(visible[0].ID); err != nil {
			return err
		}
		c.logg.Info(c.logg.WithResidenceID(ctx, visible[0].ID), "auto-selected sole visible residence")
	}
	return nil
}

// Visible returns the last loaded residence list.
func (c *Context) Visible() []api.Residence {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Residence, len(c.visible))
	copy(out, c.visible)
	return out
}

// SelectedID returns the persisted active residence id, or "".
func (c *Context) SelectedID() string {
	id, err := c.store.Get(keystore.KeySelectedResidenceID)
	if err != nil {
		c.logg.Error(context.Background(), "reading selected residence", err)
		return ""
	}
	return id
}

// Selected returns the active residence row when it is in the visible list.
func (c *Context) Selected() *api.Residence {
	id := c.SelectedID()
	if id == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.visible {
		if c.visible[i].ID == id {
			copied := c.visible[i]
			return &copied
		}
	}
	return nil
}

// Select persists the active residence.
func (c *Context) Select(id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "residence id required")
	}
	if err := c.store.Set(keystore.KeySelectedResidenceID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist residence selection")
	}
	return nil
}

// Clear drops the active residence selection.
func (c *Context) Clear() error {
	if err := c.store.Delete(keystore.KeySelectedResidenceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear residence selection")
	}
	return nil
}

// NeedsSelection reports whether navigation to residence-scoped screens
// must detour through the residence picker: a non-superadmin with more
// than one visible residence and nothing selected. Zero visible residences
// passes the gate.
func (c *Context) NeedsSelection(role enums.Role) bool {
	if role == enums.RoleSuperAdmin {
		return false
	}
	c.mu.Lock()
	count := len(c.visible)
	c.mu.Unlock()
	return count > 1 && c.SelectedID() == ""
}

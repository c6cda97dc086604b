package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// FloorsByResidence is the dedicated parent-scoped listing: the full floor
// set of one residence, unpaginated.
func (c *Client) FloorsByResidence(ctx context.Context, residenceID string) ([]Floor, error) {
	return listByParent[Floor](ctx, c, "/v1/residences/"+residenceID+"/floors")
}

// ListFloors is the generic paginated listing.
func (c *Client) ListFloors(ctx context.Context, q ListQuery) (types.Page[Floor], error) {
	return listPage[Floor](ctx, c, "/v1/floors", q)
}

// FloorInput is the create/update payload for floors.
type FloorInput struct {
	ResidenceID string `json:"residence_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
}

func (c *Client) CreateFloor(ctx context.Context, input FloorInput) (*Floor, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Floor
	if err := c.post(ctx, "/v1/floors", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFloor(ctx context.Context, id string, input FloorInput) (*Floor, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Floor
	if err := c.put(ctx, "/v1/floors/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFloor(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/floors/"+id)
}

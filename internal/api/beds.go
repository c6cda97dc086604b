package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// BedsByRoom is the dedicated parent-scoped listing for one room.
func (c *Client) BedsByRoom(ctx context.Context, roomID string) ([]Bed, error) {
	return listByParent[Bed](ctx, c, "/v1/rooms/"+roomID+"/beds")
}

// ListBeds is the generic paginated listing.
func (c *Client) ListBeds(ctx context.Context, q ListQuery) (types.Page[Bed], error) {
	return listPage[Bed](ctx, c, "/v1/beds", q)
}

// BedInput is the create/update payload for beds.
type BedInput struct {
	RoomID string `json:"room_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

func (c *Client) CreateBed(ctx context.Context, input BedInput) (*Bed, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Bed
	if err := c.post(ctx, "/v1/beds", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBed(ctx context.Context, id string, input BedInput) (*Bed, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Bed
	if err := c.put(ctx, "/v1/beds/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBed(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/beds/"+id)
}

// AssignResident places a resident in a bed; a nil residentID vacates it.
func (c *Client) AssignResident(ctx context.Context, bedID string, residentID *string) (*Bed, error) {
	payload := struct {
		ResidentID *string `json:"resident_id"`
	}{ResidentID: residentID}
	var out Bed
	if err := c.put(ctx, "/v1/beds/"+bedID+"/resident", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

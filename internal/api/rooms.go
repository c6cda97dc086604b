package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// RoomsByFloor is the dedicated parent-scoped listing for one floor.
func (c *Client) RoomsByFloor(ctx context.Context, floorID string) ([]Room, error) {
	return listByParent[Room](ctx, c, "/v1/floors/"+floorID+"/rooms")
}

// ListRooms is the generic paginated listing.
func (c *Client) ListRooms(ctx context.Context, q ListQuery) (types.Page[Room], error) {
	return listPage[Room](ctx, c, "/v1/rooms", q)
}

// RoomInput is the create/update payload for rooms.
type RoomInput struct {
	FloorID string `json:"floor_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

func (c *Client) CreateRoom(ctx context.Context, input RoomInput) (*Room, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Room
	if err := c.post(ctx, "/v1/rooms", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id string, input RoomInput) (*Room, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Room
	if err := c.put(ctx, "/v1/rooms/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/rooms/"+id)
}

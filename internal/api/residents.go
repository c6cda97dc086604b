package api

import (
	"context"
	"time"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// ListResidents is the generic paginated listing; supports the full filter
// cascade down to the bed dimension.
func (c *Client) ListResidents(ctx context.Context, q ListQuery) (types.Page[Resident], error) {
	return listPage[Resident](ctx, c, "/v1/residents", q)
}

func (c *Client) GetResident(ctx context.Context, id string) (*Resident, error) {
	var out Resident
	if err := c.get(ctx, "/v1/residents/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResidentInput is the create/update payload for residents.
type ResidentInput struct {
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	BedID     *string    `json:"bed_id,omitempty"`
}

func (c *Client) CreateResident(ctx context.Context, input ResidentInput) (*Resident, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Resident
	if err := c.post(ctx, "/v1/residents", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateResident(ctx context.Context, id string, input ResidentInput) (*Resident, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Resident
	if err := c.put(ctx, "/v1/residents/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResident(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/residents/"+id)
}

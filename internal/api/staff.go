package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// ListManagers is the paginated manager listing.
func (c *Client) ListManagers(ctx context.Context, q ListQuery) (types.Page[StaffMember], error) {
	return listPage[StaffMember](ctx, c, "/v1/managers", q)
}

// ListProfessionals is the paginated professional listing.
func (c *Client) ListProfessionals(ctx context.Context, q ListQuery) (types.Page[StaffMember], error) {
	return listPage[StaffMember](ctx, c, "/v1/professionals", q)
}

// StaffInput is the create/update payload for managers and professionals.
type StaffInput struct {
	FirstName    string   `json:"first_name" validate:"required"`
	LastName     string   `json:"last_name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	ResidenceIDs []string `json:"residence_ids,omitempty"`
}

func (c *Client) CreateManager(ctx context.Context, input StaffInput) (*StaffMember, error) {
	return c.createStaff(ctx, "/v1/managers", input)
}

func (c *Client) UpdateManager(ctx context.Context, id string, input StaffInput) (*StaffMember, error) {
	return c.updateStaff(ctx, "/v1/managers/"+id, input)
}

func (c *Client) DeleteManager(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/managers/"+id)
}

func (c *Client) CreateProfessional(ctx context.Context, input StaffInput) (*StaffMember, error) {
	return c.createStaff(ctx, "/v1/professionals", input)
}

func (c *Client) UpdateProfessional(ctx context.Context, id string, input StaffInput) (*StaffMember, error) {
	return c.updateStaff(ctx, "/v1/professionals/"+id, input)
}

func (c *Client) DeleteProfessional(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/professionals/"+id)
}

func (c *Client) createStaff(ctx context.Context, path string, input StaffInput) (*StaffMember, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out StaffMember
	if err := c.post(ctx, path, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) updateStaff(ctx context.Context, path string, input StaffInput) (*StaffMember, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out StaffMember
	if err := c.put(ctx, path, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// VisibleResidences returns every residence the session may operate on.
// The residence-context gate is built on this list.
func (c *Client) VisibleResidences(ctx context.Context) ([]Residence, error) {
	var items []Residence
	if err := c.get(ctx, "/v1/residences/visible", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListResidences is the paginated admin listing.
func (c *Client) ListResidences(ctx context.Context, q ListQuery) (types.Page[Residence], error) {
	return listPage[Residence](ctx, c, "/v1/residences", q)
}

func (c *Client) GetResidence(ctx context.Context, id string) (*Residence, error) {
	var out Residence
	if err := c.get(ctx, "/v1/residences/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResidenceInput is the create/update payload for residences.
type ResidenceInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

func (c *Client) CreateResidence(ctx context.Context, input ResidenceInput) (*Residence, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Residence
	if err := c.post(ctx, "/v1/residences", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateResidence(ctx context.Context, id string, input ResidenceInput) (*Residence, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out Residence
	if err := c.put(ctx, "/v1/residences/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteResidence(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/residences/"+id)
}

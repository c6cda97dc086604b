package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
	"github.com/curanet/careadm/pkg/types"
)

// ListTaskCategories is the paginated category listing.
func (c *Client) ListTaskCategories(ctx context.Context, q ListQuery) (types.Page[TaskCategory], error) {
	return listPage[TaskCategory](ctx, c, "/v1/task-categories", q)
}

// TaskCategoryInput is the create/update payload for task categories.
type TaskCategoryInput struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func (c *Client) CreateTaskCategory(ctx context.Context, input TaskCategoryInput) (*TaskCategory, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out TaskCategory
	if err := c.post(ctx, "/v1/task-categories", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTaskCategory(ctx context.Context, id string, input TaskCategoryInput) (*TaskCategory, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out TaskCategory
	if err := c.put(ctx, "/v1/task-categories/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTaskCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/task-categories/"+id)
}

// ListTaskTemplates is the paginated template listing.
func (c *Client) ListTaskTemplates(ctx context.Context, q ListQuery) (types.Page[TaskTemplate], error) {
	return listPage[TaskTemplate](ctx, c, "/v1/task-templates", q)
}

// TaskTemplateInput is the create/update payload for task templates.
type TaskTemplateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id" validate:"required"`
}

func (c *Client) CreateTaskTemplate(ctx context.Context, input TaskTemplateInput) (*TaskTemplate, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out TaskTemplate
	if err := c.post(ctx, "/v1/task-templates", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTaskTemplate(ctx context.Context, id string, input TaskTemplateInput) (*TaskTemplate, error) {
	if err := forms.Validate(input); err != nil {
		return nil, err
	}
	var out TaskTemplate
	if err := c.put(ctx, "/v1/task-templates/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTaskTemplate(ctx context.Context, id string) error {
	return c.delete(ctx, "/v1/task-templates/"+id)
}

package api

import (
	"context"

	"github.com/curanet/careadm/pkg/types"
)

// listPage calls a generic paginated endpoint; the residence dimension of
// the query travels in the X-Residence-Id header.
func listPage[T any](ctx context.Context, c *Client, path string, q ListQuery) (types.Page[T], error) {
	var page types.Page[T]
	if err := c.get(ctx, path, q.Values(), q.Header(), &page); err != nil {
		return types.Page[T]{}, err
	}
	return page, nil
}

// listByParent calls a dedicated parent-scoped endpoint. These return the
// full child set with no pagination envelope.
func listByParent[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	if err := c.get(ctx, path, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

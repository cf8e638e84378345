package supabase

import (
	"context"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// TagsTable is the gateway surface for the tags table. It satisfies the
// store layer's remote interface.
type TagsTable struct {
	c *Client
}

// Tags returns the tags table gateway.
func (c *Client) Tags() TagsTable { return TagsTable{c: c} }

// FetchAll returns every tag row.
func (t TagsTable) FetchAll(ctx context.Context) ([]model.Tag, error) {
	var rows []model.Tag
	if err := t.c.get(ctx, "tags?select=id,name&order=id.asc", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts or updates tags keyed by id.
func (t TagsTable) Upsert(ctx context.Context, items []model.Tag) error {
	if len(items) == 0 {
		return nil
	}
	return t.c.upsert(ctx, "tags?on_conflict=id", items)
}

// DeleteAll removes every tag row.
func (t TagsTable) DeleteAll(ctx context.Context) error {
	return t.c.deleteWhere(ctx, "tags?id=gt.0")
}

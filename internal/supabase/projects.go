package supabase

import (
	"context"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// ProjectsTable is the gateway surface for the projects table.
type ProjectsTable struct {
	c *Client
}

// Projects returns the projects table gateway.
func (c *Client) Projects() ProjectsTable { return ProjectsTable{c: c} }

// FetchAll returns every project row.
func (p ProjectsTable) FetchAll(ctx context.Context) ([]model.Project, error) {
	var rows []model.Project
	if err := p.c.get(ctx, "projects?select=id,name,tag_id,created_at,updated_at&order=id.asc", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts or updates projects keyed by id.
func (p ProjectsTable) Upsert(ctx context.Context, items []model.Project) error {
	if len(items) == 0 {
		return nil
	}
	return p.c.upsert(ctx, "projects?on_conflict=id", items)
}

// DeleteAll removes every project row.
func (p ProjectsTable) DeleteAll(ctx context.Context) error {
	return p.c.deleteWhere(ctx, "projects?id=gt.0")
}

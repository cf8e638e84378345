package supabase

import (
	"context"
	"time"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

const eventSelect = "events?select=id,title,start_ts,end_ts,status,notes,tag_id,project_id,tags(name),projects(name)&order=start_ts.asc"

type eventRow struct {
	model.Event
	TagJoin     *nameRef `json:"tags"`
	ProjectJoin *nameRef `json:"projects"`
}

type eventWrite struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start_ts"`
	End       time.Time `json:"end_ts"`
	Status    *string   `json:"status,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	TagID     *int64    `json:"tag_id,omitempty"`
	ProjectID *int64    `json:"project_id,omitempty"`
}

// EventsTable is the gateway surface for the events table.
type EventsTable struct {
	c *Client
}

// Events returns the events table gateway.
func (c *Client) Events() EventsTable { return EventsTable{c: c} }

// FetchAll returns every event row with tag and project names resolved.
func (e EventsTable) FetchAll(ctx context.Context) ([]model.Event, error) {
	var rows []eventRow
	if err := e.c.get(ctx, eventSelect, &rows); err != nil {
		return nil, err
	}
	out := make([]model.Event, len(rows))
	for i, r := range rows {
		event := r.Event
		if r.TagJoin != nil {
			name := r.TagJoin.Name
			event.Tag = &name
		}
		if r.ProjectJoin != nil {
			name := r.ProjectJoin.Name
			event.Project = &name
		}
		out[i] = event
	}
	return out, nil
}

// Upsert inserts or updates events keyed by id.
func (e EventsTable) Upsert(ctx context.Context, items []model.Event) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]eventWrite, len(items))
	for i, ev := range items {
		rows[i] = eventWrite{
			ID:        ev.ID,
			Title:     ev.Title,
			Start:     ev.Start,
			End:       ev.End,
			Status:    ev.Status,
			Notes:     ev.Notes,
			TagID:     ev.TagID,
			ProjectID: ev.ProjectID,
		}
	}
	return e.c.upsert(ctx, "events?on_conflict=id", rows)
}

// DeleteAll removes every event row.
func (e EventsTable) DeleteAll(ctx context.Context) error {
	return e.c.deleteWhere(ctx, "events?id=gt.0")
}

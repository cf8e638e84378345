package supabase

import (
	"context"
	"time"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// Task rows embed the tag and project display names via PostgREST's
// foreign-table selection. The has_time filter keeps legacy unified rows
// (timed tasks from the old single-table schema) out of the task list;
// those live in the events table now.
const taskSelect = "tasks?select=id,title,notes,status,tag_id,project_id,parent_id,has_time,due_date,start_ts,end_ts,tags(name),projects(name)" +
	"&or=(has_time.is.null,has_time.is.false)&order=id.asc"

// taskRow is the read-path representation: the entity plus the embedded
// join objects.
type taskRow struct {
	model.Task
	TagJoin     *nameRef `json:"tags"`
	ProjectJoin *nameRef `json:"projects"`
}

// taskWrite is the write-path representation. The denormalized tag and
// project names are read-time projections and are never sent back.
type taskWrite struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Notes     *string         `json:"notes,omitempty"`
	Status    *string         `json:"status,omitempty"`
	TagID     *int64          `json:"tag_id,omitempty"`
	ProjectID *int64          `json:"project_id,omitempty"`
	ParentID  *int64          `json:"parent_id,omitempty"`
	Due       *model.DateOnly `json:"due_date,omitempty"`
	Start     *time.Time      `json:"start_ts,omitempty"`
	End       *time.Time      `json:"end_ts,omitempty"`
	HasTime   *bool           `json:"has_time,omitempty"`
}

// TasksTable is the gateway surface for the tasks table.
type TasksTable struct {
	c *Client
}

// Tasks returns the tasks table gateway.
func (c *Client) Tasks() TasksTable { return TasksTable{c: c} }

// FetchAll returns every untimed task row with tag and project names
// resolved.
func (t TasksTable) FetchAll(ctx context.Context) ([]model.Task, error) {
	var rows []taskRow
	if err := t.c.get(ctx, taskSelect, &rows); err != nil {
		return nil, err
	}
	out := make([]model.Task, len(rows))
	for i, r := range rows {
		task := r.Task
		if r.TagJoin != nil {
			name := r.TagJoin.Name
			task.Tag = &name
		}
		if r.ProjectJoin != nil {
			name := r.ProjectJoin.Name
			task.Project = &name
		}
		out[i] = task
	}
	return out, nil
}

// Upsert inserts or updates tasks keyed by id.
func (t TasksTable) Upsert(ctx context.Context, items []model.Task) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]taskWrite, len(items))
	for i, task := range items {
		rows[i] = taskWrite{
			ID:        task.ID,
			Title:     task.Title,
			Notes:     task.Notes,
			Status:    task.Status,
			TagID:     task.TagID,
			ProjectID: task.ProjectID,
			ParentID:  task.ParentID,
			Due:       task.Due,
			Start:     task.Start,
			End:       task.End,
			HasTime:   task.HasTime,
		}
	}
	return t.c.upsert(ctx, "tasks?on_conflict=id", rows)
}

// DeleteAll removes every task row.
func (t TasksTable) DeleteAll(ctx context.Context) error {
	return t.c.deleteWhere(ctx, "tasks?id=gt.0")
}

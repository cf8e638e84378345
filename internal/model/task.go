package model

import "time"

// Task is an untimed todo item. The Tag and Project display names are a
// read-time join cache filled in by the gateway; they are never written
// back to the backend.
type Task struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Notes     *string    `json:"notes,omitempty"`
	Status    *string    `json:"status,omitempty"`
	TagID     *int64     `json:"tag_id,omitempty"`
	Tag       *string    `json:"tag,omitempty"`
	ProjectID *int64     `json:"project_id,omitempty"`
	Project   *string    `json:"project,omitempty"`
	ParentID  *int64     `json:"parent_id,omitempty"`
	Due       *DateOnly  `json:"due_date,omitempty"`
	Start     *time.Time `json:"start_ts,omitempty"`
	End       *time.Time `json:"end_ts,omitempty"`
	HasTime   *bool      `json:"has_time,omitempty"`
}

// EntityID implements Entity.
func (t Task) EntityID() int64 { return t.ID }

// NewTask creates a task with a client-generated id and the given title.
func NewTask(title string) Task {
	return Task{ID: NewID(), Title: title}
}

// NormalizedStatus returns the canonical kanban column for this task.
func (t Task) NormalizedStatus() string {
	if t.Status == nil {
		return NormalizeStatus("")
	}
	return NormalizeStatus(*t.Status)
}

// IsDue reports whether the task is due today or earlier.
func (t Task) IsDue() bool {
	if t.Due == nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !t.Due.Time().After(today)
}

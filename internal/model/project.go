package model

import "time"

// Project groups tasks under an optional tag.
type Project struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	TagID     *int64     `json:"tag_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// EntityID implements Entity.
func (p Project) EntityID() int64 { return p.ID }

// NewProject creates a project with a client-generated id.
func NewProject(name string, tagID *int64) Project {
	now := time.Now().UTC()
	return Project{
		ID:        NewID(),
		Name:      name,
		TagID:     tagID,
		CreatedAt: &now,
		UpdatedAt: &now,
	}
}

package model

// Tag is a top-level label. Projects and tasks may reference it by id,
// so it must exist remotely before anything that points at it.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EntityID implements Entity.
func (t Tag) EntityID() int64 { return t.ID }

// NewTag creates a tag with a client-generated id.
func NewTag(name string) Tag {
	return Tag{ID: NewID(), Name: name}
}

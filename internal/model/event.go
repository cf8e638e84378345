package model

import (
	"sort"
	"time"
)

// Event is a scheduled calendar entry. Start <= End is expected but not
// enforced; the calendar renders whatever it is given. Tag and Project
// display names follow the same read-only join rule as Task.
type Event struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Start     time.Time  `json:"start_ts"`
	End       time.Time  `json:"end_ts"`
	Status    *string    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	TagID     *int64     `json:"tag_id,omitempty"`
	Tag       *string    `json:"tag,omitempty"`
	ProjectID *int64     `json:"project_id,omitempty"`
	Project   *string    `json:"project,omitempty"`
}

// EntityID implements Entity.
func (e Event) EntityID() int64 { return e.ID }

// NewEvent creates an event with a client-generated id.
func NewEvent(title string, start, end time.Time) Event {
	return Event{ID: NewID(), Title: title, Start: start, End: end}
}

// SameDay reports whether the event starts on the given calendar day.
func (e Event) SameDay(day time.Time) bool {
	y1, m1, d1 := e.Start.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SortByStart orders events in place by start time, earliest first.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}

package store

import (
	"path/filepath"
	"time"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// EventStore owns the local event collection (events.json).
type EventStore struct {
	*Store[model.Event]
}

// NewEventStore creates the event store under dataDir.
func NewEventStore(dataDir string, remote Remote[model.Event], events *bus.Bus, log *logger.Logger) *EventStore {
	return &EventStore{New(filepath.Join(dataDir, "events.json"), remote, events, bus.EventsChanged, log)}
}

// ForDay returns the events starting on the given calendar day, ordered
// by start time.
func (s *EventStore) ForDay(day time.Time) []model.Event {
	var out []model.Event
	for _, e := range s.Items() {
		if e.SameDay(day) {
			out = append(out, e)
		}
	}
	model.SortByStart(out)
	return out
}

// ByStatus returns events whose normalized status matches the given
// canonical status.
func (s *EventStore) ByStatus(status string) []model.Event {
	want := model.NormalizeStatus(status)
	var out []model.Event
	for _, e := range s.Items() {
		raw := ""
		if e.Status != nil {
			raw = *e.Status
		}
		if model.NormalizeStatus(raw) == want {
			out = append(out, e)
		}
	}
	return out
}

// ByTag returns events carrying the given tag display name.
func (s *EventStore) ByTag(tag string) []model.Event {
	var out []model.Event
	for _, e := range s.Items() {
		if e.Tag != nil && *e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// ByProject returns events carrying the given project display name.
func (s *EventStore) ByProject(project string) []model.Event {
	var out []model.Event
	for _, e := range s.Items() {
		if e.Project != nil && *e.Project == project {
			out = append(out, e)
		}
	}
	return out
}

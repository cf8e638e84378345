// Package store holds the authoritative local copies of the planner
// collections. Each store owns one entity type, persists it to a JSON
// file and mediates between local mutation and remote synchronization.
// Local state is always authoritative for the current session: remote
// failures never roll back a local change.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// Remote is the per-table gateway surface a store syncs against.
type Remote[T model.Entity] interface {
	FetchAll(ctx context.Context) ([]T, error)
	Upsert(ctx context.Context, items []T) error
	DeleteAll(ctx context.Context) error
}

// Notifier schedules a background push after a local mutation. The push
// worker implements it; tests can substitute their own.
type Notifier interface {
	TriggerPush()
}

// ErrorReporter receives remote sync failures. The status manager
// implements it so dependent UI can show the error.
type ErrorReporter interface {
	SyncFailed(op string, err error)
}

// Store owns one entity collection. All collection access goes through
// the store mutex; insertion order is preserved.
type Store[T model.Entity] struct {
	mu       sync.Mutex
	path     string
	items    []T
	remote   Remote[T]
	events   *bus.Bus
	topic    bus.Topic
	log      *logger.Logger
	notifier Notifier
	reporter ErrorReporter
}

// New creates a store persisting to path and re-publishes its change
// topic whenever an orchestrated refresh completes, so observers of this
// store re-read after a pull they did not initiate.
func New[T model.Entity](path string, remote Remote[T], events *bus.Bus, topic bus.Topic, log *logger.Logger) *Store[T] {
	s := &Store[T]{
		path:   path,
		remote: remote,
		events: events,
		topic:  topic,
		log:    log,
	}
	if events != nil {
		events.Subscribe(bus.DataSynced, func(bus.Topic) {
			events.Publish(topic)
		})
	}
	return s
}

// SetNotifier wires the background push worker.
func (s *Store[T]) SetNotifier(n Notifier) { s.notifier = n }

// SetErrorReporter wires the sync status manager.
func (s *Store[T]) SetErrorReporter(r ErrorReporter) { s.reporter = r }

// Load reads the persisted collection. A missing or corrupt file leaves
// the in-memory collection as it is; first run starts empty.
func (s *Store[T]) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logWarn("ignoring corrupt local file", logger.F("path", s.path), logger.F("error", err))
		return
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Save writes the whole collection to disk. A write failure is logged and
// swallowed, but the change notification still fires so observers stay in
// step with the in-memory state.
func (s *Store[T]) Save() {
	s.mu.Lock()
	items := s.items
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	s.mu.Unlock()

	if err == nil {
		if mkErr := os.MkdirAll(filepath.Dir(s.path), 0755); mkErr == nil {
			err = os.WriteFile(s.path, data, 0600)
		} else {
			err = mkErr
		}
	}
	if err != nil {
		s.logWarn("failed to persist collection", logger.F("path", s.path), logger.F("error", err))
	}

	s.publish()
}

// Items returns a snapshot copy of the collection.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the collection size.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// IDs returns the identifier set of the collection.
func (s *Store[T]) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, len(s.items))
	for i, item := range s.items {
		ids[i] = item.EntityID()
	}
	return ids
}

// Get returns the entity with the given id.
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Add appends an entity, persists and schedules a background push.
func (s *Store[T]) Add(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.Save()
	s.triggerPush()
}

// Update mutates the entity with the given id in place. It reports
// whether the id was found; no push is scheduled when it was not.
func (s *Store[T]) Update(id int64, mutate func(*T)) bool {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].EntityID() == id {
			mutate(&s.items[i])
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return false
	}
	s.Save()
	s.triggerPush()
	return true
}

// Remove deletes the entity with the given id.
func (s *Store[T]) Remove(id int64) bool {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return false
	}
	s.Save()
	s.triggerPush()
	return true
}

// ReplaceAll swaps the whole collection and persists it.
func (s *Store[T]) ReplaceAll(items []T) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.Save()
}

// PullRemote fetches the full remote collection and replaces the local
// one. On failure the local collection is untouched, the failure is
// reported to the status manager and returned to the caller.
func (s *Store[T]) PullRemote(ctx context.Context) error {
	remote, err := s.remote.FetchAll(ctx)
	if err != nil {
		s.logWarn("pull failed", logger.F("path", s.path), logger.F("error", err))
		if s.reporter != nil {
			s.reporter.SyncFailed("pull", err)
		}
		return err
	}
	s.ReplaceAll(remote)
	return nil
}

// PushRemote upserts the current local collection keyed by id. Remote
// rows absent locally are left alone.
func (s *Store[T]) PushRemote(ctx context.Context) error {
	if err := s.remote.Upsert(ctx, s.Items()); err != nil {
		s.logWarn("push failed", logger.F("path", s.path), logger.F("error", err))
		if s.reporter != nil {
			s.reporter.SyncFailed("push", err)
		}
		return err
	}
	return nil
}

// DeleteRemote wipes this entity's remote table.
func (s *Store[T]) DeleteRemote(ctx context.Context) error {
	return s.remote.DeleteAll(ctx)
}

// ReplaceRemote destructively overwrites the remote collection with the
// local one: delete-all then upsert-all for this entity only. Cross-entity
// ordering is the orchestrator's job.
func (s *Store[T]) ReplaceRemote(ctx context.Context) error {
	if err := s.DeleteRemote(ctx); err != nil {
		if s.reporter != nil {
			s.reporter.SyncFailed("replace", err)
		}
		return err
	}
	return s.PushRemote(ctx)
}

func (s *Store[T]) publish() {
	if s.events != nil {
		s.events.Publish(s.topic)
	}
}

func (s *Store[T]) triggerPush() {
	if s.notifier != nil {
		s.notifier.TriggerPush()
	}
}

func (s *Store[T]) logWarn(msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Warn(msg, fields...)
	}
}

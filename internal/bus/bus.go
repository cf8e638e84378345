// Package bus is a small in-process event bus used to decouple the sync
// layer from whatever renders its state. Topics are typed constants, not
// free-form strings.
package bus

import "sync"

// Topic identifies a class of events.
type Topic int

const (
	// DataSynced fires after an orchestrated refresh completes
	// successfully, so every store's observers re-read.
	DataSynced Topic = iota
	TagsChanged
	ProjectsChanged
	TasksChanged
	EventsChanged
)

// String returns the topic name for logging.
func (t Topic) String() string {
	switch t {
	case DataSynced:
		return "data_synced"
	case TagsChanged:
		return "tags_changed"
	case ProjectsChanged:
		return "projects_changed"
	case TasksChanged:
		return "tasks_changed"
	case EventsChanged:
		return "events_changed"
	default:
		return "unknown"
	}
}

// Handler receives events for a subscribed topic.
type Handler func(Topic)

// Bus delivers events synchronously to registered handlers.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[Topic]map[int]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[Topic]map[int]Handler)}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

// Publish delivers the topic to every subscribed handler. Handlers run on
// the caller's goroutine; they must not block.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	hs := make([]Handler, 0, len(b.handlers[topic]))
	for _, h := range b.handlers[topic] {
		hs = append(hs, h)
	}
	b.mu.Unlock()

	for _, h := range hs {
		h(topic)
	}
}

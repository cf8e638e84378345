// Package syncer coordinates multi-entity sync operations against the
// remote backend and tracks their progress for UI binding.
package syncer

import (
	"sync"
	"time"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
)

// StatusManager is the single shared observable describing in-flight sync
// work: a refresh flag, a backup flag, the last successful sync time and
// the last error message. All transitions are serialized by its mutex.
type StatusManager struct {
	mu          sync.Mutex
	refreshing  bool
	backingUp   bool
	lastSync    *time.Time
	syncError   string
	events      *bus.Bus
	subscribers []func()
}

// NewStatusManager creates a status manager publishing on the given bus.
func NewStatusManager(events *bus.Bus) *StatusManager {
	return &StatusManager{events: events}
}

// StartRefresh marks a remote-to-local refresh as in flight and clears
// any previous error.
func (m *StatusManager) StartRefresh() {
	m.mu.Lock()
	m.refreshing = true
	m.syncError = ""
	m.mu.Unlock()
	m.notify()
}

// FinishRefresh ends the refresh. An empty errMsg means success: the last
// sync time is updated and a DataSynced event is broadcast so every store
// refreshes its observers.
func (m *StatusManager) FinishRefresh(errMsg string) {
	m.mu.Lock()
	m.refreshing = false
	m.syncError = errMsg
	success := errMsg == ""
	if success {
		now := time.Now()
		m.lastSync = &now
	}
	m.mu.Unlock()
	m.notify()

	if success && m.events != nil {
		m.events.Publish(bus.DataSynced)
	}
}

// StartBackup marks a local-to-remote backup as in flight and clears any
// previous error.
func (m *StatusManager) StartBackup() {
	m.mu.Lock()
	m.backingUp = true
	m.syncError = ""
	m.mu.Unlock()
	m.notify()
}

// FinishBackup ends the backup, recording the error message if any.
func (m *StatusManager) FinishBackup(errMsg string) {
	m.mu.Lock()
	m.backingUp = false
	m.syncError = errMsg
	if errMsg == "" {
		now := time.Now()
		m.lastSync = &now
	}
	m.mu.Unlock()
	m.notify()
}

// SyncFailed records a remote failure reported by a store outside an
// orchestrated operation (for example a background push). It implements
// the store layer's ErrorReporter.
func (m *StatusManager) SyncFailed(op string, err error) {
	m.mu.Lock()
	m.syncError = op + ": " + err.Error()
	m.mu.Unlock()
	m.notify()
}

// Refreshing reports whether a refresh is in flight.
func (m *StatusManager) Refreshing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshing
}

// BackingUp reports whether a backup is in flight.
func (m *StatusManager) BackingUp() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backingUp
}

// LastSync returns the time of the last successful sync, or nil.
func (m *StatusManager) LastSync() *time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSync
}

// Err returns the last sync error message; empty means no error.
func (m *StatusManager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncError
}

// OnChange registers a callback invoked after every state transition.
func (m *StatusManager) OnChange(fn func()) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	m.mu.Unlock()
}

func (m *StatusManager) notify() {
	m.mu.Lock()
	subs := make([]func(), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

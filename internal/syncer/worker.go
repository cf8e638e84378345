package syncer

import (
	"context"
	"sync"
	"time"
)

// Worker batches background pushes. Local mutations call TriggerPush;
// after a quiet period the worker runs one IncrementalSync covering all
// pending changes. Callers that need the push to have happened (tests,
// CLI exit) use Flush.
type Worker struct {
	orch         *Orchestrator
	debounceTime time.Duration
	pollInterval time.Duration // 0 disables remote polling
	pending      bool
	mu           sync.Mutex
	stopCh       chan struct{}
	stopOnce     sync.Once
}

// WorkerOptions tune the worker timing. Zero values select the defaults.
type WorkerOptions struct {
	Debounce time.Duration // default 5s
	Poll     time.Duration // remote pull interval; 0 keeps polling off
}

// NewWorker creates a push worker for the orchestrator.
func NewWorker(orch *Orchestrator, opts WorkerOptions) *Worker {
	if opts.Debounce == 0 {
		opts.Debounce = 5 * time.Second
	}
	w := &Worker{
		orch:         orch,
		debounceTime: opts.Debounce,
		pollInterval: opts.Poll,
		stopCh:       make(chan struct{}),
	}
	if w.pollInterval > 0 {
		go w.pollLoop()
	}
	return w
}

func (w *Worker) pollLoop() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = w.orch.InitialPull(context.Background())
		case <-w.stopCh:
			return
		}
	}
}

// TriggerPush schedules a debounced incremental sync. Implements the
// store layer's Notifier.
func (w *Worker) TriggerPush() {
	w.mu.Lock()
	already := w.pending
	w.pending = true
	w.mu.Unlock()

	if !already {
		go w.debouncedPush()
	}
}

func (w *Worker) debouncedPush() {
	timer := time.NewTimer(w.debounceTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		w.performPush(context.Background())
	case <-w.stopCh:
	}
}

func (w *Worker) performPush(ctx context.Context) {
	w.mu.Lock()
	w.pending = false
	w.mu.Unlock()

	// Failures are already recorded in the status manager; the next
	// successful sync converges local and remote again.
	_ = w.orch.IncrementalSync(ctx)
}

// Flush runs any pending push immediately and returns when it completes.
func (w *Worker) Flush(ctx context.Context) error {
	w.mu.Lock()
	pending := w.pending
	w.pending = false
	w.mu.Unlock()

	if !pending {
		return nil
	}
	return w.orch.IncrementalSync(ctx)
}

// IsPending reports whether a push is scheduled.
func (w *Worker) IsPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Stop shuts the worker down. Pending pushes are dropped; call Flush
// first to drain them.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

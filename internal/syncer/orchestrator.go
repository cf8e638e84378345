package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/store"
)

var (
	// ErrNothingToReplace is returned when a remote replace is requested
	// while every local collection is empty. Wiping a populated backend
	// from an uninitialized device is never what the user meant.
	ErrNothingToReplace = errors.New("all local collections are empty, remote replace skipped")

	// ErrConflict is returned by SafeSync when local and remote
	// identifier sets overlap and the caller did not force the replace.
	ErrConflict = errors.New("local and remote data overlap")
)

// IDFetcher returns the identifier set of a remote table. The Supabase
// client implements it.
type IDFetcher interface {
	FetchIDs(ctx context.Context, table string) ([]int64, error)
}

// Orchestrator sequences multi-entity sync operations in foreign-key
// dependency order: tags before projects before tasks before events.
type Orchestrator struct {
	tags     *store.TagStore
	projects *store.ProjectStore
	tasks    *store.TaskStore
	events   *store.EventStore
	ids      IDFetcher
	status   *StatusManager
	log      *logger.Logger
}

// New creates an orchestrator over the four stores. All collaborators are
// injected; the orchestrator holds no global state.
func New(tags *store.TagStore, projects *store.ProjectStore, tasks *store.TaskStore,
	events *store.EventStore, ids IDFetcher, status *StatusManager, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		tags:     tags,
		projects: projects,
		tasks:    tasks,
		events:   events,
		ids:      ids,
		status:   status,
		log:      log,
	}
}

// InitialPull replaces every local collection with the remote one, pulling
// tags, projects, tasks and events strictly in that order. The first
// failing pull stops the sequence: already-pulled stores keep their new
// data, the rest keep their old data. There is no cross-entity rollback.
func (o *Orchestrator) InitialPull(ctx context.Context) error {
	o.status.StartRefresh()
	o.logInfo("initial pull started")

	pulls := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"tags", o.tags.PullRemote},
		{"projects", o.projects.PullRemote},
		{"tasks", o.tasks.PullRemote},
		{"events", o.events.PullRemote},
	}

	for _, p := range pulls {
		if err := p.fn(ctx); err != nil {
			wrapped := fmt.Errorf("pull %s: %w", p.name, err)
			o.logWarn("initial pull aborted", logger.F("entity", p.name), logger.F("error", err))
			o.status.FinishRefresh(wrapped.Error())
			return wrapped
		}
	}

	o.logInfo("initial pull finished")
	o.status.FinishRefresh("")
	return nil
}

// ReplaceRemoteWithLocal destructively overwrites the remote backend with
// the local collections: delete events, tasks, projects, tags (most
// dependent first), then upsert tags, projects, tasks, events. The
// operation refuses to run when every local collection is empty.
func (o *Orchestrator) ReplaceRemoteWithLocal(ctx context.Context) error {
	if o.tags.Len() == 0 && o.projects.Len() == 0 && o.tasks.Len() == 0 && o.events.Len() == 0 {
		o.logWarn("remote replace skipped, nothing local")
		o.status.SyncFailed("replace", ErrNothingToReplace)
		return ErrNothingToReplace
	}

	o.status.StartBackup()
	o.logInfo("remote replace started")

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"delete events", o.events.DeleteRemote},
		{"delete tasks", o.tasks.DeleteRemote},
		{"delete projects", o.projects.DeleteRemote},
		{"delete tags", o.tags.DeleteRemote},
		{"upsert tags", o.tags.PushRemote},
		{"upsert projects", o.projects.PushRemote},
		{"upsert tasks", o.tasks.PushRemote},
		{"upsert events", o.events.PushRemote},
	}

	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			wrapped := fmt.Errorf("%s: %w", s.name, err)
			o.logWarn("remote replace aborted", logger.F("step", s.name), logger.F("error", err))
			o.status.FinishBackup(wrapped.Error())
			return wrapped
		}
	}

	o.logInfo("remote replace finished")
	o.status.FinishBackup("")
	return nil
}

// IncrementalSync pushes all four collections concurrently. Pushes are
// id-keyed upserts with no deletes, so no ordering is required.
func (o *Orchestrator) IncrementalSync(ctx context.Context) error {
	o.status.StartBackup()

	pushes := []func(context.Context) error{
		o.tags.PushRemote,
		o.projects.PushRemote,
		o.tasks.PushRemote,
		o.events.PushRemote,
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		lastErr error
	)
	for _, push := range pushes {
		wg.Add(1)
		go func(fn func(context.Context) error) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				mu.Lock()
				lastErr = err
				mu.Unlock()
			}
		}(push)
	}
	wg.Wait()

	if lastErr != nil {
		o.status.FinishBackup(lastErr.Error())
		return lastErr
	}
	o.status.FinishBackup("")
	return nil
}

// SafeSync replaces the remote backend with local data only when the two
// identifier sets are disjoint. Any id collision aborts with ErrConflict
// unless force is set. This is a coarse bootstrap safeguard, not a merge:
// once any sync has run, re-synced records keep their ids and the check
// will trip until the user forces the replace.
func (o *Orchestrator) SafeSync(ctx context.Context, force bool) error {
	if force {
		return o.ReplaceRemoteWithLocal(ctx)
	}

	checks := []struct {
		table string
		local []int64
	}{
		{"tags", o.tags.IDs()},
		{"projects", o.projects.IDs()},
		{"tasks", o.tasks.IDs()},
		{"events", o.events.IDs()},
	}

	overlap := 0
	for _, c := range checks {
		remote, err := o.ids.FetchIDs(ctx, c.table)
		if err != nil {
			wrapped := fmt.Errorf("fetch %s ids: %w", c.table, err)
			o.status.SyncFailed("safe sync", wrapped)
			return wrapped
		}
		overlap += intersectCount(c.local, remote)
	}

	if overlap > 0 {
		err := fmt.Errorf("%w: %d shared ids; re-run with force to overwrite remote", ErrConflict, overlap)
		o.logWarn("safe sync conflict", logger.F("overlap", overlap))
		o.status.SyncFailed("safe sync", err)
		return err
	}

	return o.ReplaceRemoteWithLocal(ctx)
}

func intersectCount(a, b []int64) int {
	set := make(map[int64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	n := 0
	for _, id := range b {
		if _, ok := set[id]; ok {
			n++
		}
	}
	return n
}

func (o *Orchestrator) logInfo(msg string, fields ...logger.Field) {
	if o.log != nil {
		o.log.Info(msg, fields...)
	}
}

func (o *Orchestrator) logWarn(msg string, fields ...logger.Field) {
	if o.log != nil {
		o.log.Warn(msg, fields...)
	}
}

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// fakeRemote is an in-memory Remote recording every call.
type fakeRemote[T model.Entity] struct {
	rows       []T
	fetchErr   error
	upsertErr  error
	deleteErr  error
	fetches    int
	upserted   [][]T
	deletes    int
}

func (f *fakeRemote[T]) FetchAll(ctx context.Context) ([]T, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.rows, nil
}

func (f *fakeRemote[T]) Upsert(ctx context.Context, items []T) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, items)
	return nil
}

func (f *fakeRemote[T]) DeleteAll(ctx context.Context) error {
	f.deletes++
	return f.deleteErr
}

type fakeNotifier struct{ pushes int }

func (n *fakeNotifier) TriggerPush() { n.pushes++ }

type fakeReporter struct {
	ops  []string
	errs []error
}

func (r *fakeReporter) SyncFailed(op string, err error) {
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func newTestTagStore(t *testing.T) (*TagStore, *fakeRemote[model.Tag]) {
	t.Helper()
	remote := &fakeRemote[model.Tag]{}
	return NewTagStore(t.TempDir(), remote, bus.New(), nil), remote
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewTagStore(dir, &fakeRemote[model.Tag]{}, bus.New(), nil)

	work := model.NewTag("Work")
	health := model.NewTag("Health")
	s.Add(work)
	s.Add(health)

	// A fresh store over the same directory sees the same data.
	reread := NewTagStore(dir, &fakeRemote[model.Tag]{}, bus.New(), nil)
	reread.Load()

	require.Equal(t, 2, reread.Len())
	got, ok := reread.Get(work.ID)
	require.True(t, ok)
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, s.IDs(), reread.IDs(), "insertion order survives the round trip")
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := newTestTagStore(t)
	s.Load()
	assert.Zero(t, s.Len(), "first run starts empty")
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tags.json"), []byte("{not json"), 0600))

	s := NewTagStore(dir, &fakeRemote[model.Tag]{}, bus.New(), nil)
	s.Add(model.NewTag("Survivor"))
	s.Load()

	assert.Equal(t, 1, s.Len(), "corrupt file leaves in-memory data alone")
}

func TestAddUpdateRemove(t *testing.T) {
	s, _ := newTestTagStore(t)
	notifier := &fakeNotifier{}
	s.SetNotifier(notifier)

	tag := model.NewTag("Wrok")
	s.Add(tag)
	assert.Equal(t, 1, notifier.pushes)

	ok := s.Update(tag.ID, func(item *model.Tag) { item.Name = "Work" })
	require.True(t, ok)
	got, _ := s.Get(tag.ID)
	assert.Equal(t, "Work", got.Name)
	assert.Equal(t, 2, notifier.pushes)

	assert.False(t, s.Update(12345, func(*model.Tag) {}), "unknown id")
	assert.Equal(t, 2, notifier.pushes, "missed update schedules no push")

	require.True(t, s.Remove(tag.ID))
	assert.Zero(t, s.Len())
	assert.Equal(t, 3, notifier.pushes)

	assert.False(t, s.Remove(tag.ID), "already removed")
}

func TestChangePublishesTopic(t *testing.T) {
	b := bus.New()
	s := NewTagStore(t.TempDir(), &fakeRemote[model.Tag]{}, b, nil)

	changes := 0
	b.Subscribe(bus.TagsChanged, func(bus.Topic) { changes++ })

	s.Add(model.NewTag("Work"))
	assert.Equal(t, 1, changes)
}

func TestDataSyncedRepublishesTopic(t *testing.T) {
	b := bus.New()
	NewTagStore(t.TempDir(), &fakeRemote[model.Tag]{}, b, nil)

	changes := 0
	b.Subscribe(bus.TagsChanged, func(bus.Topic) { changes++ })

	// An orchestrated refresh completion makes every store re-announce
	// itself so passive observers re-read.
	b.Publish(bus.DataSynced)
	assert.Equal(t, 1, changes)
}

func TestPullRemoteReplacesLocal(t *testing.T) {
	s, remote := newTestTagStore(t)
	s.Add(model.NewTag("Stale"))

	remote.rows = []model.Tag{{ID: 1, Name: "Work"}, {ID: 2, Name: "Health"}}
	require.NoError(t, s.PullRemote(context.Background()))

	assert.Equal(t, []int64{1, 2}, s.IDs(), "pull replaces, it does not merge")
	_, ok := s.ByName("Stale")
	assert.False(t, ok)
}

func TestPullRemoteFailureKeepsLocal(t *testing.T) {
	s, remote := newTestTagStore(t)
	reporter := &fakeReporter{}
	s.SetErrorReporter(reporter)

	local := model.NewTag("Precious")
	s.Add(local)

	remote.fetchErr = errors.New("backend down")
	err := s.PullRemote(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, s.Len(), "failed pull never clobbers local data")
	_, ok := s.Get(local.ID)
	assert.True(t, ok)
	require.Len(t, reporter.ops, 1)
	assert.Equal(t, "pull", reporter.ops[0])
}

func TestPushRemote(t *testing.T) {
	s, remote := newTestTagStore(t)
	tag := model.NewTag("Work")
	s.Add(tag)

	require.NoError(t, s.PushRemote(context.Background()))
	require.Len(t, remote.upserted, 1)
	assert.Equal(t, []model.Tag{tag}, remote.upserted[0])
}

func TestPushRemoteFailureReported(t *testing.T) {
	s, remote := newTestTagStore(t)
	reporter := &fakeReporter{}
	s.SetErrorReporter(reporter)

	s.Add(model.NewTag("Work"))
	remote.upsertErr = errors.New("backend down")

	require.Error(t, s.PushRemote(context.Background()))
	require.Len(t, reporter.ops, 1)
	assert.Equal(t, "push", reporter.ops[0])
}

func TestReplaceRemote(t *testing.T) {
	s, remote := newTestTagStore(t)
	s.Add(model.NewTag("Work"))

	require.NoError(t, s.ReplaceRemote(context.Background()))
	assert.Equal(t, 1, remote.deletes, "delete-all precedes the upsert")
	assert.Len(t, remote.upserted, 1)
}

func TestReplaceRemoteDeleteFailureSkipsPush(t *testing.T) {
	s, remote := newTestTagStore(t)
	s.Add(model.NewTag("Work"))

	remote.deleteErr = errors.New("backend down")
	require.Error(t, s.ReplaceRemote(context.Background()))
	assert.Empty(t, remote.upserted, "no upsert after a failed wipe")
}

func TestTaskStoreFilters(t *testing.T) {
	s := NewTaskStore(t.TempDir(), &fakeRemote[model.Task]{}, bus.New(), nil)

	workName, thesisName := "Work", "Thesis"
	doing, done := "In Progress", "Tamamlandı"

	a := model.NewTask("write chapter")
	a.Status = &doing
	a.Tag = &workName
	a.Project = &thesisName
	b := model.NewTask("submit draft")
	b.Status = &done
	c := model.NewTask("buy groceries")
	c.ParentID = &a.ID

	s.Add(a)
	s.Add(b)
	s.Add(c)

	assert.Len(t, s.ByStatus("doing"), 1)
	assert.Len(t, s.ByStatus("WIP"), 1, "filter input is normalized too")
	assert.Len(t, s.ByStatus("done"), 1)
	assert.Len(t, s.ByStatus("todo"), 1, "nil status counts as todo")

	assert.Len(t, s.ByTag("Work"), 1)
	assert.Empty(t, s.ByTag("Health"))
	assert.Len(t, s.ByProject("Thesis"), 1)

	subs := s.Subtasks(a.ID)
	require.Len(t, subs, 1)
	assert.Equal(t, c.ID, subs[0].ID)
}

func TestProjectStoreFilters(t *testing.T) {
	s := NewProjectStore(t.TempDir(), &fakeRemote[model.Project]{}, bus.New(), nil)

	tagID := int64(42)
	p := model.NewProject("Thesis", &tagID)
	q := model.NewProject("Garden", nil)
	s.Add(p)
	s.Add(q)

	got, ok := s.ByName("Thesis")
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	_, ok = s.ByName("Nope")
	assert.False(t, ok)

	byTag := s.ByTag(tagID)
	require.Len(t, byTag, 1)
	assert.Equal(t, p.ID, byTag[0].ID)
}

func TestEventStoreForDay(t *testing.T) {
	s := NewEventStore(t.TempDir(), &fakeRemote[model.Event]{}, bus.New(), nil)

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	late := model.NewEvent("dinner", day.Add(19*time.Hour), day.Add(20*time.Hour))
	early := model.NewEvent("standup", day.Add(9*time.Hour), day.Add(10*time.Hour))
	other := model.NewEvent("flight", day.AddDate(0, 0, 1), day.AddDate(0, 0, 1).Add(2*time.Hour))

	s.Add(late)
	s.Add(early)
	s.Add(other)

	got := s.ForDay(day)
	require.Len(t, got, 2)
	assert.Equal(t, "standup", got[0].Title, "day view is sorted by start time")
	assert.Equal(t, "dinner", got[1].Title)
}

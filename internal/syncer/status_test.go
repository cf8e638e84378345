package syncer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
)

func TestRefreshLifecycle(t *testing.T) {
	m := NewStatusManager(bus.New())

	assert.False(t, m.Refreshing())
	assert.Nil(t, m.LastSync())

	m.StartRefresh()
	assert.True(t, m.Refreshing())
	assert.Empty(t, m.Err())

	m.FinishRefresh("")
	assert.False(t, m.Refreshing())
	assert.Empty(t, m.Err())
	require.NotNil(t, m.LastSync())
}

func TestFailedRefreshKeepsLastSync(t *testing.T) {
	m := NewStatusManager(bus.New())

	m.StartRefresh()
	m.FinishRefresh("")
	first := m.LastSync()
	require.NotNil(t, first)

	m.StartRefresh()
	m.FinishRefresh("backend down")

	assert.Equal(t, "backend down", m.Err())
	assert.Equal(t, first, m.LastSync(), "failure does not advance the sync time")
}

func TestStartClearsPreviousError(t *testing.T) {
	m := NewStatusManager(bus.New())

	m.StartRefresh()
	m.FinishRefresh("backend down")
	require.NotEmpty(t, m.Err())

	m.StartRefresh()
	assert.Empty(t, m.Err(), "a new attempt starts clean")
}

func TestFinishRefreshBroadcast(t *testing.T) {
	b := bus.New()
	m := NewStatusManager(b)

	synced := 0
	b.Subscribe(bus.DataSynced, func(bus.Topic) { synced++ })

	m.StartRefresh()
	m.FinishRefresh("")
	assert.Equal(t, 1, synced)

	m.StartRefresh()
	m.FinishRefresh("backend down")
	assert.Equal(t, 1, synced, "failures are not broadcast")
}

func TestBackupLifecycle(t *testing.T) {
	b := bus.New()
	m := NewStatusManager(b)

	synced := 0
	b.Subscribe(bus.DataSynced, func(bus.Topic) { synced++ })

	m.StartBackup()
	assert.True(t, m.BackingUp())

	m.FinishBackup("")
	assert.False(t, m.BackingUp())
	assert.NotNil(t, m.LastSync())
	assert.Zero(t, synced, "backups do not rebroadcast local data")
}

func TestSyncFailed(t *testing.T) {
	m := NewStatusManager(bus.New())

	m.SyncFailed("push", errors.New("backend down"))
	assert.Equal(t, "push: backend down", m.Err())
}

func TestOnChange(t *testing.T) {
	m := NewStatusManager(bus.New())

	changes := 0
	m.OnChange(func() { changes++ })

	m.StartRefresh()
	m.FinishRefresh("")
	assert.Equal(t, 2, changes)
}

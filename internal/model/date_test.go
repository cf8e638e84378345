package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyMarshal(t *testing.T) {
	d := NewDateOnly(time.Date(2026, 3, 14, 17, 45, 12, 0, time.Local))
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14"`, string(data), "time component must be dropped")
}

func TestDateOnlyUnmarshal(t *testing.T) {
	var d DateOnly
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-14"`), &d))
	assert.Equal(t, "2026-03-14", d.String())
}

func TestDateOnlyUnmarshalTimestamp(t *testing.T) {
	// PostgREST sometimes returns full timestamps for date columns.
	var d DateOnly
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-14T09:30:00+00:00"`), &d))
	assert.Equal(t, "2026-03-14", d.String())
}

func TestDateOnlyUnmarshalInvalid(t *testing.T) {
	var d DateOnly
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &d))
}

func TestTaskDueDateRoundTrip(t *testing.T) {
	due := NewDateOnly(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	task := NewTask("submit thesis")
	task.Due = &due

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"due_date":"2026-09-01"`)

	var back Task
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.Due)
	assert.Equal(t, "2026-09-01", back.Due.String())
}

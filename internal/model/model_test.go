package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIDDistinct(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Positive(t, id)
		seen[id] = struct{}{}
	}
	// Jitter keeps same-millisecond ids apart; a burst of 1000 should
	// produce very few collisions, none in practice.
	assert.Greater(t, len(seen), 990)
}

func TestNewIDOrdering(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()
	assert.Less(t, a, b, "ids created later must be larger")
}

func TestEventSameDay(t *testing.T) {
	start := time.Date(2026, 8, 31, 9, 30, 0, 0, time.Local)
	e := NewEvent("standup", start, start.Add(15*time.Minute))

	assert.True(t, e.SameDay(time.Date(2026, 8, 31, 23, 0, 0, 0, time.Local)))
	assert.False(t, e.SameDay(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)))
}

func TestSortByStart(t *testing.T) {
	now := time.Now()
	events := []Event{
		NewEvent("late", now.Add(2*time.Hour), now.Add(3*time.Hour)),
		NewEvent("early", now, now.Add(time.Hour)),
		NewEvent("middle", now.Add(time.Hour), now.Add(2*time.Hour)),
	}

	SortByStart(events)

	assert.Equal(t, "early", events[0].Title)
	assert.Equal(t, "middle", events[1].Title)
	assert.Equal(t, "late", events[2].Title)
}

func TestTaskIsDue(t *testing.T) {
	task := NewTask("water plants")
	assert.False(t, task.IsDue(), "no due date means not due")

	past := NewDateOnly(time.Now().AddDate(0, 0, -1))
	task.Due = &past
	assert.True(t, task.IsDue())

	future := NewDateOnly(time.Now().AddDate(0, 0, 7))
	task.Due = &future
	assert.False(t, task.IsDue())
}

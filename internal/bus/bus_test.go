package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribePublish(t *testing.T) {
	b := New()

	got := 0
	b.Subscribe(TagsChanged, func(topic Topic) {
		assert.Equal(t, TagsChanged, topic)
		got++
	})

	b.Publish(TagsChanged)
	b.Publish(TagsChanged)
	assert.Equal(t, 2, got)
}

func TestPublishOnlyMatchingTopic(t *testing.T) {
	b := New()

	var tags, tasks int
	b.Subscribe(TagsChanged, func(Topic) { tags++ })
	b.Subscribe(TasksChanged, func(Topic) { tasks++ })

	b.Publish(TagsChanged)
	assert.Equal(t, 1, tags)
	assert.Equal(t, 0, tasks)
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	got := 0
	unsub := b.Subscribe(DataSynced, func(Topic) { got++ })

	b.Publish(DataSynced)
	unsub()
	b.Publish(DataSynced)

	assert.Equal(t, 1, got)
}

func TestPublishNoSubscribers(t *testing.T) {
	b := New()
	// Must not panic.
	b.Publish(EventsChanged)
}

func TestTopicString(t *testing.T) {
	assert.Equal(t, "data_synced", DataSynced.String())
	assert.Equal(t, "tags_changed", TagsChanged.String())
	assert.Equal(t, "unknown", Topic(99).String())
}

package store

import (
	"path/filepath"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// TagStore owns the local tag collection (tags.json).
type TagStore struct {
	*Store[model.Tag]
}

// NewTagStore creates the tag store under dataDir.
func NewTagStore(dataDir string, remote Remote[model.Tag], events *bus.Bus, log *logger.Logger) *TagStore {
	return &TagStore{New(filepath.Join(dataDir, "tags.json"), remote, events, bus.TagsChanged, log)}
}

// ByName returns the tag with the given name.
func (s *TagStore) ByName(name string) (model.Tag, bool) {
	for _, t := range s.Items() {
		if t.Name == name {
			return t, true
		}
	}
	return model.Tag{}, false
}

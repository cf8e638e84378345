package store

import (
	"path/filepath"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// ProjectStore owns the local project collection (projects.json).
type ProjectStore struct {
	*Store[model.Project]
}

// NewProjectStore creates the project store under dataDir.
func NewProjectStore(dataDir string, remote Remote[model.Project], events *bus.Bus, log *logger.Logger) *ProjectStore {
	return &ProjectStore{New(filepath.Join(dataDir, "projects.json"), remote, events, bus.ProjectsChanged, log)}
}

// ByName returns the project with the given name.
func (s *ProjectStore) ByName(name string) (model.Project, bool) {
	for _, p := range s.Items() {
		if p.Name == name {
			return p, true
		}
	}
	return model.Project{}, false
}

// ByTag returns projects referencing the given tag id.
func (s *ProjectStore) ByTag(tagID int64) []model.Project {
	var out []model.Project
	for _, p := range s.Items() {
		if p.TagID != nil && *p.TagID == tagID {
			out = append(out, p)
		}
	}
	return out
}

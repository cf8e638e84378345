package store

import (
	"path/filepath"

	"github.com/kurtulus-bartu/personal-assistant/internal/bus"
	"github.com/kurtulus-bartu/personal-assistant/internal/logger"
	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

// TaskStore owns the local task collection (tasks.json).
type TaskStore struct {
	*Store[model.Task]
}

// NewTaskStore creates the task store under dataDir.
func NewTaskStore(dataDir string, remote Remote[model.Task], events *bus.Bus, log *logger.Logger) *TaskStore {
	return &TaskStore{New(filepath.Join(dataDir, "tasks.json"), remote, events, bus.TasksChanged, log)}
}

// ByStatus returns tasks whose normalized status matches the given
// canonical status (todo, doing or done).
func (s *TaskStore) ByStatus(status string) []model.Task {
	want := model.NormalizeStatus(status)
	var out []model.Task
	for _, t := range s.Items() {
		if t.NormalizedStatus() == want {
			out = append(out, t)
		}
	}
	return out
}

// ByTag returns tasks carrying the given tag display name.
func (s *TaskStore) ByTag(tag string) []model.Task {
	var out []model.Task
	for _, t := range s.Items() {
		if t.Tag != nil && *t.Tag == tag {
			out = append(out, t)
		}
	}
	return out
}

// ByProject returns tasks carrying the given project display name.
func (s *TaskStore) ByProject(project string) []model.Task {
	var out []model.Task
	for _, t := range s.Items() {
		if t.Project != nil && *t.Project == project {
			out = append(out, t)
		}
	}
	return out
}

// Subtasks returns tasks whose parent is the given task id.
func (s *TaskStore) Subtasks(parentID int64) []model.Task {
	var out []model.Task
	for _, t := range s.Items() {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out
}

package server

import "fmt"

// migrate runs all database migrations. Columns use portable TEXT/BIGINT
// affinities so the same DDL works on sqlite and postgres; timestamps are
// ISO-8601 strings and booleans are 0/1, matching the wire encoding.
func (s *Server) migrate() error {
	migrations := []string{
		migrationCreateTags,
		migrationCreateProjects,
		migrationCreateTasks,
		migrationCreateEvents,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

const migrationCreateTags = `
CREATE TABLE IF NOT EXISTS tags (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL
);
`

const migrationCreateProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    tag_id BIGINT REFERENCES tags(id),
    created_at TEXT,
    updated_at TEXT
);
`

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    notes TEXT,
    status TEXT,
    tag_id BIGINT REFERENCES tags(id),
    project_id BIGINT REFERENCES projects(id),
    parent_id BIGINT,
    has_time BIGINT,
    due_date TEXT,
    start_ts TEXT,
    end_ts TEXT
);
`

const migrationCreateEvents = `
CREATE TABLE IF NOT EXISTS events (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    start_ts TEXT NOT NULL,
    end_ts TEXT NOT NULL,
    status TEXT,
    notes TEXT,
    tag_id BIGINT REFERENCES tags(id),
    project_id BIGINT REFERENCES projects(id)
);
`

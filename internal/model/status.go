package model

import "strings"

// Canonical kanban statuses. Every free-form status string collapses to
// one of these three.
const (
	StatusTodo  = "todo"
	StatusDoing = "doing"
	StatusDone  = "done"
)

// statusSynonyms maps lowercased raw status strings to canonical values.
// The table covers English and Turkish spellings seen in the backend,
// including variants without Turkish diacritics.
var statusSynonyms = map[string]string{
	"todo": StatusTodo, "to-do": StatusTodo, "to do": StatusTodo,
	"backlog": StatusTodo, "open": StatusTodo, "new": StatusTodo, "ns": StatusTodo,
	"not started": StatusTodo, "not_started": StatusTodo,
	"bekliyor": StatusTodo, "yapilacak": StatusTodo, "yapılacak": StatusTodo,

	"doing": StatusDoing, "in progress": StatusDoing, "in_progress": StatusDoing,
	"progress": StatusDoing, "wip": StatusDoing,
	"calisiyor": StatusDoing, "çalışıyor": StatusDoing,
	"yapiliyor": StatusDoing, "yapılıyor": StatusDoing,

	"done": StatusDone, "completed": StatusDone, "complete": StatusDone,
	"finished": StatusDone, "closed": StatusDone, "resolved": StatusDone,
	"bitti": StatusDone, "tamamlandi": StatusDone, "tamamlandı": StatusDone,
}

// NormalizeStatus collapses a raw status string into todo, doing or done.
// Unrecognized or empty input normalizes to todo.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if canon, ok := statusSynonyms[s]; ok {
		return canon
	}
	return StatusTodo
}

// Package model defines the planner entities shared by the local stores,
// the Supabase gateway and the CLI.
package model

import (
	"math/rand"
	"time"
)

// Entity is implemented by every synced planner record.
type Entity interface {
	EntityID() int64
}

// NewID generates a client-side identifier: current unix milliseconds
// scaled by 1000 plus a random jitter, so ids created within the same
// millisecond stay distinct. All four entity types use this scheme.
func NewID() int64 {
	ms := time.Now().UnixMilli()
	return ms*1000 + rand.Int63n(1000)
}

package model

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateOnly is a calendar date without a time component. Supabase stores
// task due dates as a bare date column, so the JSON form is always
// "YYYY-MM-DD"; a full ISO timestamp is accepted on decode and truncated.
type DateOnly struct {
	t time.Time
}

// NewDateOnly truncates t to its calendar date in UTC.
func NewDateOnly(t time.Time) DateOnly {
	y, m, d := t.Date()
	return DateOnly{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Time returns the date at midnight UTC.
func (d DateOnly) Time() time.Time { return d.t }

// String returns the date in YYYY-MM-DD form.
func (d DateOnly) String() string { return d.t.Format(dateOnlyLayout) }

// MarshalJSON implements json.Marshaler.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.Format(dateOnlyLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	// Tolerate full timestamps by keeping only the date part.
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.t = t
	return nil
}

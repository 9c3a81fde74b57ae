// Package dateutil maps "a calendar day the user cares about" to the value
// stored in the database and back, in a timezone-stable way.
//
// Day-valued dates are stored at 12:00 UTC. Midnight UTC is one timezone
// hop away from the previous day for negative offsets; anchoring at noon
// leaves 12 hours of slack on both sides before skew can cross a day
// boundary.
package dateutil

import (
	"fmt"
	"time"

	"habit-board/backend/internal/models"
)

// NoonUTC extracts the calendar date of t as seen by t's own location and
// returns that date at 12:00:00 UTC.
func NoonUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// SameDay reports whether a stored day value and a target instant fall on
// the same calendar day. Stored values are read by their UTC components,
// the target by its local components. Never compare instants directly:
// equal days rarely mean equal timestamps here.
func SameDay(stored, target time.Time) bool {
	sy, sm, sd := stored.UTC().Date()
	ty, tm, td := target.Date()
	return sy == ty && sm == tm && sd == td
}

// IsCompletedOn reports whether any completion in the slice lands on
// target's calendar day with its completed flag set.
func IsCompletedOn(completions []models.TaskCompletion, target time.Time) bool {
	for _, c := range completions {
		if c.Completed && SameDay(c.Date, target) {
			return true
		}
	}
	return false
}

// DayColumn describes one cell of the horizontal habit grid.
type DayColumn struct {
	Date    time.Time `json:"date"`
	Weekday string    `json:"weekday"`
	Day     int       `json:"day"`
	Month   string    `json:"month"`
	IsToday bool      `json:"is_today"`
}

// Columns returns days consecutive calendar days around center:
// floor(days/2) before it and the remainder after. The split is
// intentionally floor-based, so for odd counts the center day sits one
// slot left of the visual middle.
func Columns(center time.Time, days int) []DayColumn {
	if days <= 0 {
		return nil
	}

	now := time.Now()
	before := days / 2
	cols := make([]DayColumn, 0, days)

	for i := -before; i < days-before; i++ {
		d := center.AddDate(0, 0, i)
		cols = append(cols, DayColumn{
			Date:    NoonUTC(d),
			Weekday: d.Weekday().String()[:3],
			Day:     d.Day(),
			Month:   d.Month().String()[:3],
			IsToday: SameDay(NoonUTC(d), now),
		})
	}

	return cols
}

// ParseDate accepts the date formats clients send: RFC3339 timestamps or
// bare YYYY-MM-DD strings.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", s)
}

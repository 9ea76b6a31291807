// Package ptime anchors all wall-clock math for the service.
// Storage and eligibility comparisons use UTC instants exclusively; the fixed
// UTC+8 civil zone exists for presentation and user input only and never feeds
// back into comparisons. The zone is a constant offset, not DST-aware, and is
// independent of the host locale.
package ptime

import (
	"strings"
	"time"
)

// DisplayZone is the fixed civil timezone used for user-facing times
var DisplayZone = time.FixedZone("UTC+8", 8*60*60)

// DisplayLayout is the canonical wire format for display-zone datetimes
const DisplayLayout = "2006-01-02 15:04:05"

// displayLayouts are the accepted input shapes, canonical first
var displayLayouts = []string{
	DisplayLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// NowUTC returns the current instant in UTC
func NowUTC() time.Time { return time.Now().UTC() }

// ToDisplay converts a stored UTC instant into the display zone
func ToDisplay(t time.Time) time.Time { return t.In(DisplayZone) }

// FromDisplay reads the civil wall-clock fields of t as display-zone time and
// returns the UTC instant the user meant. The location t carries is ignored
func FromDisplay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), DisplayZone).UTC()
}

// ParseDisplay parses a display-zone datetime string into a UTC instant
func ParseDisplay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range displayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return FromDisplay(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDisplay renders a UTC instant in the display zone using DisplayLayout
func FormatDisplay(t time.Time) string { return t.In(DisplayZone).Format(DisplayLayout) }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

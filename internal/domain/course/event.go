package course

import (
	"strings"
	"time"
)

// EventStatus is the tracker state of a submission event.
type EventStatus string

const (
	StatusOpen   EventStatus = "OPEN"
	StatusClosed EventStatus = "CLOSED"
)

// IsChecked reports whether the event has been reviewed. Anything that is
// not CLOSED counts as unchecked, including unrecognized states.
func (s EventStatus) IsChecked() bool {
	return s == StatusClosed
}

// RawEvent is one parsed line of the submission feed. IssueID is nil when
// the identifier field was absent or not numeric.
type RawEvent struct {
	IssueID   *int
	Status    EventStatus
	Title     string
	CreatedAt string
}

// FormatLabel names the textual shape of an event title, e.g.
// "Day## by Name". Labels come from a fixed ordered taxonomy; see the
// resolver package.
type FormatLabel string

// ResolvedEvent is a RawEvent with its entities resolved. Student and
// Assignment are canonical keys or the UNKNOWN sentinels.
type ResolvedEvent struct {
	RawEvent
	Student    string
	Assignment string
	Format     FormatLabel
}

// ParseISOZ parses a canonical YYYY-MM-DDTHH:MM:SSZ timestamp. The second
// return value is false for empty or malformed input; callers degrade to
// absent values rather than erroring.
func ParseISOZ(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

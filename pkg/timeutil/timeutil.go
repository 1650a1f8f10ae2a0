// Package timeutil provides display-timezone utilities for the course
// report. The pipeline itself works exclusively in UTC; only presentation
// layers convert, and the course reference zone is Asia/Jerusalem.
// No external dependencies - uses only standard library.
package timeutil

import "time"

// jerusalemFallback approximates Israel Standard Time when the IANA
// database is unavailable. It ignores DST, which is acceptable for a
// fallback used only for display grouping.
var jerusalemFallback = time.FixedZone("Asia/Jerusalem", 2*60*60)

// DisplayZone resolves a named IANA zone, defaulting to Asia/Jerusalem.
// Resolution failure degrades to a fixed UTC+2 zone rather than an error.
func DisplayZone(name string) *time.Location {
	if name == "" {
		name = "Asia/Jerusalem"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return jerusalemFallback
	}
	return loc
}

// ToDisplay converts a UTC instant into the given display zone.
func ToDisplay(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}

// FormatStamp renders an instant for human-facing report headers.
func FormatStamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04 MST")
}

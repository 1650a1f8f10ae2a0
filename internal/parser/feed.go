package parser

import (
	"strconv"
	"strings"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// ParseFeed parses the newline-separated submission feed. Each record is
// tab-delimited: id, status, title, then any number of extra fields with
// the creation timestamp always last. Blank lines and lines with fewer than
// three fields are skipped silently; a non-numeric identifier is stored as
// absent rather than rejected.
func ParseFeed(text string) []course.RawEvent {
	var events []course.RawEvent

	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		parts := strings.Split(raw, "\t")
		if len(parts) < 3 {
			continue
		}

		ev := course.RawEvent{
			Status:    course.EventStatus(strings.ToUpper(strings.TrimSpace(parts[1]))),
			Title:     strings.TrimSpace(parts[2]),
			CreatedAt: strings.TrimSpace(parts[len(parts)-1]),
		}
		if id, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			ev.IssueID = &id
		}

		events = append(events, ev)
	}

	return events
}

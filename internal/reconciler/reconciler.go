// Package reconciler folds resolved events into per-(student, assignment)
// submission records and attaches signed deadline deltas. Records are built
// in a single construction pass; nothing mutates them afterwards.
package reconciler

import (
	"time"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// Reconcile groups resolved events by (student, assignment), computes a
// delta for every retained event independently, and picks the record of
// record: the event with the lexicographically greatest timestamp string,
// which for valid ISO-8601 UTC strings is chronological order. Ties keep
// the earlier feed entry. Events whose timestamp or deadline fails to
// parse get a nil delta, never a zero one.
func Reconcile(events []course.ResolvedEvent, deadlines course.DeadlineMap) course.SubmissionSet {
	grouped := make(map[string]map[string][]course.ResolvedEvent)
	for _, ev := range events {
		per, ok := grouped[ev.Student]
		if !ok {
			per = make(map[string][]course.ResolvedEvent)
			grouped[ev.Student] = per
		}
		per[ev.Assignment] = append(per[ev.Assignment], ev)
	}

	set := make(course.SubmissionSet, len(grouped))
	for student, per := range grouped {
		records := make(map[string]*course.SubmissionRecord, len(per))
		for assignment, group := range per {
			deadline, hasDeadline := parseDeadline(deadlines, assignment)

			history := make([]course.TimedEvent, 0, len(group))
			latest := 0
			for i, ev := range group {
				te := course.TimedEvent{ResolvedEvent: ev}
				if submitted, ok := course.ParseISOZ(ev.CreatedAt); ok && hasDeadline {
					te.Delta = course.NewDelta(submitted, deadline)
				}
				history = append(history, te)
				if ev.CreatedAt > group[latest].CreatedAt {
					latest = i
				}
			}

			records[assignment] = &course.SubmissionRecord{
				Latest:  history[latest],
				History: history,
			}
		}
		set[student] = records
	}

	return set
}

// parseDeadline looks up and parses an assignment's deadline. A missing
// key, a fallback (non-timestamp) deadline value, or the UNKNOWN sentinel
// all come back as not-ok.
func parseDeadline(deadlines course.DeadlineMap, assignment string) (time.Time, bool) {
	ds, ok := deadlines[assignment]
	if !ok {
		return time.Time{}, false
	}
	return course.ParseISOZ(ds)
}

// Package pipeline wires the report stages together: document parsing and
// feed normalization feed entity resolution, whose output feeds temporal
// reconciliation; the reporter folds the result. Each stage consumes the
// complete output of the previous one - the run is synchronous and
// single-threaded, and data flows strictly forward.
package pipeline

import (
	"github.com/wis-hub/course-report/internal/domain/course"
	"github.com/wis-hub/course-report/internal/parser"
	"github.com/wis-hub/course-report/internal/reconciler"
	"github.com/wis-hub/course-report/internal/resolver"
	"github.com/wis-hub/course-report/pkg/logger"
)

// Result carries every intermediate and final product of one run. Roster,
// Deadlines and Submissions are built once and treated as immutable by all
// consumers.
type Result struct {
	Roster      course.Roster
	Deadlines   course.DeadlineMap
	Assignments []string // display order
	Events      []course.RawEvent
	Resolved    []course.ResolvedEvent
	Submissions course.SubmissionSet
}

// Build runs the full pipeline over the two text sources. Malformed input
// never fails the run; it degrades into UNKNOWN buckets and absent deltas,
// which are logged as warnings for the reporting layer to flag.
func Build(documentText, feedText string, log *logger.Logger) *Result {
	if log == nil {
		log = logger.Default()
	}
	log = log.With(logger.Component("pipeline"))

	roster, deadlines := parser.ParseDocument(documentText)
	assignments := deadlines.Assignments()
	log.Info("document parsed",
		logger.Count("students", len(roster)),
		logger.Count("assignments", len(assignments)))

	events := parser.ParseFeed(feedText)
	log.Info("feed normalized", logger.Count("events", len(events)))

	res := resolver.New(roster, assignments)
	resolved := make([]course.ResolvedEvent, 0, len(events))
	for _, ev := range events {
		resolved = append(resolved, res.Resolve(ev))
	}

	submissions := reconciler.Reconcile(resolved, deadlines)

	if unknown := submissions.Unknown(); len(unknown) > 0 {
		n := 0
		for _, rec := range unknown {
			n += len(rec.History)
		}
		log.Warn("events without a matched student",
			logger.Count("events", n),
			logger.Count("assignments", len(unknown)))
	}

	return &Result{
		Roster:      roster,
		Deadlines:   deadlines,
		Assignments: assignments,
		Events:      events,
		Resolved:    resolved,
		Submissions: submissions,
	}
}

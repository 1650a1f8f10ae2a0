package reporter

import (
	"github.com/wis-hub/course-report/internal/domain/course"
)

// AssignmentSummary holds per-assignment counts across the roster.
// Unchecked counts records whose tracker status is not CLOSED; it is
// independent of the on-time/late/missing classification, so a record can
// be both late and unchecked.
type AssignmentSummary struct {
	Assignment string
	OnTime     int
	Late       int
	Missing    int
	Unchecked  int
}

// Summarize computes the per-assignment counts in the given assignment
// order. Only roster students participate; UNKNOWN-bucket records are not
// counted here.
func Summarize(roster course.Roster, assignmentNames []string, set course.SubmissionSet) []AssignmentSummary {
	out := make([]AssignmentSummary, 0, len(assignmentNames))

	for _, a := range assignmentNames {
		s := AssignmentSummary{Assignment: a}

		for _, student := range roster {
			rec := set.Record(student, a)
			if rec == nil {
				s.Missing++
				continue
			}

			switch course.StatusOf(rec) {
			case course.Late:
				s.Late++
			case course.Missing:
				s.Missing++
			default:
				s.OnTime++
			}

			if !rec.Latest.Status.IsChecked() {
				s.Unchecked++
			}
		}

		out = append(out, s)
	}

	return out
}

// SummaryTable renders the per-assignment summary as a table.
func SummaryTable(roster course.Roster, assignmentNames []string, set course.SubmissionSet) Table {
	summaries := Summarize(roster, assignmentNames, set)

	rows := make([][]any, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []any{s.Assignment, s.OnTime, s.Late, s.Missing, s.Unchecked})
	}

	return Table{
		Header: []string{"Assignment", "On-time", "Late", "Missing", "Unchecked"},
		Rows:   rows,
	}
}

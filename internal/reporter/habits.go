package reporter

import (
	"math"
	"sort"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// HabitsTable builds the per-student habits table: the mean lead time in
// hours (deadline minus submission, so positive means early) over every
// retained event with a defined delta, duplicates included, plus the
// distinct format labels those events used. Students with no timed events
// get a nil mean, not zero.
//
// Columns: Student, Avg. sub. time (hours), Unique formats, Formats.
func HabitsTable(roster course.Roster, set course.SubmissionSet) Table {
	header := []string{"Student", "Avg. sub. time (hours)", "Unique formats", "Formats"}

	rows := make([][]any, 0, len(roster))
	for _, student := range roster {
		var hours []float64
		formatSet := make(map[course.FormatLabel]bool)

		for _, rec := range set[student] {
			for _, te := range rec.History {
				if te.Delta == nil {
					continue
				}
				// Lead time inverts the raw delta sign convention.
				hours = append(hours, float64(-te.Delta.Seconds)/3600.0)
				if te.Format != "" {
					formatSet[te.Format] = true
				}
			}
		}

		var mean any
		if len(hours) > 0 {
			sum := 0.0
			for _, h := range hours {
				sum += h
			}
			mean = math.Round(sum/float64(len(hours))*100) / 100
		}

		formats := make([]string, 0, len(formatSet))
		for f := range formatSet {
			formats = append(formats, string(f))
		}
		sort.Strings(formats)

		rows = append(rows, []any{student, mean, len(formats), formats})
	}

	return Table{Header: header, Rows: rows}
}

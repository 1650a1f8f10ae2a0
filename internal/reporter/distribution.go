package reporter

import (
	"fmt"
	"sort"
	"time"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// weekdayOrder lists days Sunday-first, matching the course week.
var weekdayOrder = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// OnTimeClock counts on-time submissions (delta defined and <= 0) by local
// weekday and by local hour of day, using the given display location. Only
// the record of record per (student, assignment) participates. The results
// feed external chart renderers.
func OnTimeClock(set course.SubmissionSet, loc *time.Location) (byWeekday, byHour Table) {
	weekdayCounts := make(map[time.Weekday]int)
	hourCounts := make(map[int]int)

	for _, per := range set {
		for _, rec := range per {
			te := rec.Latest
			if te.Delta == nil || te.Delta.Seconds > 0 {
				continue
			}
			t, ok := course.ParseISOZ(te.CreatedAt)
			if !ok {
				continue
			}
			local := t.In(loc)
			weekdayCounts[local.Weekday()]++
			hourCounts[local.Hour()]++
		}
	}

	byWeekday = Table{Header: []string{"Weekday", "On-time submissions"}}
	for _, wd := range weekdayOrder {
		byWeekday.Rows = append(byWeekday.Rows, []any{wd.String(), weekdayCounts[wd]})
	}

	byHour = Table{Header: []string{"Hour", "On-time submissions"}}
	for h := 0; h < 24; h++ {
		label := fmt.Sprintf("%02d:00-%02d:59", h, h)
		byHour.Rows = append(byHour.Rows, []any{label, hourCounts[h]})
	}

	return byWeekday, byHour
}

// FormatPopularity counts how often each title format was used per
// assignment, over every retained event including duplicates. Rows are
// ordered by overall format frequency, most common first; ties keep
// first-seen order. Columns follow the given assignment order.
func FormatPopularity(set course.SubmissionSet, assignmentNames []string) Table {
	known := make(map[string]bool, len(assignmentNames))
	for _, a := range assignmentNames {
		known[a] = true
	}

	counts := make(map[string]map[string]int) // assignment -> format -> count
	overall := make(map[string]int)
	var firstSeen []string

	for _, per := range set {
		for assignment, rec := range per {
			if !known[assignment] {
				continue
			}
			for _, te := range rec.History {
				fmtLabel := string(te.Format)
				if fmtLabel == "" {
					fmtLabel = "Other"
				}
				if counts[assignment] == nil {
					counts[assignment] = make(map[string]int)
				}
				counts[assignment][fmtLabel]++
				if overall[fmtLabel] == 0 {
					firstSeen = append(firstSeen, fmtLabel)
				}
				overall[fmtLabel]++
			}
		}
	}

	formats := make([]string, len(firstSeen))
	copy(formats, firstSeen)
	sort.SliceStable(formats, func(i, j int) bool {
		return overall[formats[i]] > overall[formats[j]]
	})

	header := append([]string{"Format"}, assignmentNames...)
	rows := make([][]any, 0, len(formats))
	for _, f := range formats {
		row := make([]any, 0, len(header))
		row = append(row, f)
		for _, a := range assignmentNames {
			row = append(row, counts[a][f])
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

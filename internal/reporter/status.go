package reporter

import (
	"github.com/wis-hub/course-report/internal/domain/course"
)

// StatusTable builds one row per roster student with one On-time / Late /
// Missing cell per assignment, plus trailing Total Late and Total Missing
// counts. Assignments are ordered numerically by day, with non-day names
// after them. Only the record of record is consulted; a record with an
// absent delta counts as Missing.
func StatusTable(roster course.Roster, assignmentNames []string, set course.SubmissionSet) Table {
	assignments := course.SortAssignments(assignmentNames)

	header := make([]string, 0, len(assignments)+3)
	header = append(header, "Student")
	header = append(header, assignments...)
	header = append(header, "Total Late", "Total Missing")

	rows := make([][]any, 0, len(roster))
	for _, student := range roster {
		row := make([]any, 0, len(header))
		row = append(row, student)

		late := 0
		missing := 0
		for _, a := range assignments {
			status := course.StatusOf(set.Record(student, a))
			switch status {
			case course.Late:
				late++
			case course.Missing:
				missing++
			}
			row = append(row, string(status))
		}

		row = append(row, late, missing)
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

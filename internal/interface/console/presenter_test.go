package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wis-hub/course-report/internal/domain/course"
	"github.com/wis-hub/course-report/internal/pipeline"
	"github.com/wis-hub/course-report/internal/reporter"
)

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil))
	assert.Equal(t, "On-time", FormatCell("On-time"))
	assert.Equal(t, "7", FormatCell(7))
	assert.Equal(t, "-2.50", FormatCell(-2.5))
	assert.Equal(t, "0.28", FormatCell(0.28))
	assert.Equal(t, "a, b", FormatCell([]string{"a", "b"}))
	assert.Equal(t, "", FormatCell([]string(nil)))
}

func TestRenderTable(t *testing.T) {
	table := reporter.Table{
		Header: []string{"Student", "Mean"},
		Rows: [][]any{
			{"Dana Levi", 0.5},
			{"Omer Katz", nil},
		},
	}

	got := RenderTable(table)
	want := "| Student   | Mean |\n" +
		"|-----------|------|\n" +
		"| Dana Levi | 0.50 |\n" +
		"| Omer Katz |      |\n"
	assert.Equal(t, want, got)
}

func TestSummaryLines(t *testing.T) {
	lines := SummaryLines([]reporter.AssignmentSummary{
		{Assignment: "Day01", OnTime: 12, Late: 3, Missing: 5, Unchecked: 2},
	})
	require.Len(t, lines, 1)
	assert.Equal(t, "Day01: 12 on-time, 3 late, 5 missing (2 unchecked issues).", lines[0])
}

func TestPrintReport(t *testing.T) {
	res := pipeline.Build(
		"## Students\n\n| S | G |\n|---|---|\n| [Dana Levi](x) | d |\n\n"+
			"### Assignment (day 1)\n\nDead-line: 2025.11.01 22:00\n",
		"1\tCLOSED\tDay01 by Dana Levi\t\t2025-11-01T20:00:00Z\n"+
			"2\tOPEN\tmystery\t\t2025-11-02T09:00:00Z\n",
		nil)

	var buf bytes.Buffer
	p := NewPresenter(&buf, time.UTC)
	p.PrintReport("acme/bootcamp", res)

	out := buf.String()
	assert.Contains(t, out, "Course Assignment Submission Report")
	assert.Contains(t, out, "Repository: acme/bootcamp")
	assert.Contains(t, out, "Students found: 1")
	assert.Contains(t, out, "Assignments found: 1")
	assert.Contains(t, out, "could not be matched to a student")
	assert.Contains(t, out, "Status Table (On-time / Late / Missing)")
	assert.Contains(t, out, "Day01: 1 on-time, 0 late, 0 missing (0 unchecked issues).")
	assert.Contains(t, out, "On-time Submissions by Weekday")
	assert.Contains(t, out, "Format Popularity by Assignment")

	// the roster student is on time for Day01
	rec := res.Submissions.Record("Dana Levi", "Day01")
	require.NotNil(t, rec)
	assert.Equal(t, course.OnTime, course.StatusOf(rec))
}

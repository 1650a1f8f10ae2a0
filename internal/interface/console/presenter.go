// Package console formats report output for the terminal. Presenters
// convert tables and summaries into markdown-style text; this is the only
// layer that applies the display timezone.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wis-hub/course-report/internal/pipeline"
	"github.com/wis-hub/course-report/internal/reporter"
)

// Presenter writes the rendered report.
type Presenter struct {
	out io.Writer
	loc *time.Location
}

// NewPresenter creates a Presenter writing to out, using loc for any
// timezone-sensitive output.
func NewPresenter(out io.Writer, loc *time.Location) *Presenter {
	return &Presenter{out: out, loc: loc}
}

// ─────────────────────────────────────────────────────────────────────────────
// FULL REPORT
// ─────────────────────────────────────────────────────────────────────────────

// PrintReport renders the complete submission report: header, status
// table, per-assignment summary, habits table and the distribution tables.
func (p *Presenter) PrintReport(repo string, res *pipeline.Result) {
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out, "Course Assignment Submission Report")
	fmt.Fprintf(p.out, "Repository: %s\n", repo)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "  Students found: %d\n", len(res.Roster))
	fmt.Fprintf(p.out, "  Assignments found: %d\n", len(res.Assignments))

	if unknown := res.Submissions.Unknown(); len(unknown) > 0 {
		fmt.Fprintf(p.out,
			"  WARNING: %d issues could not be matched to a student (stored under 'UNKNOWN').\n",
			len(unknown))
	}

	fmt.Fprintln(p.out, "\nStatus Table (On-time / Late / Missing)")
	fmt.Fprintln(p.out)
	p.PrintTable(reporter.StatusTable(res.Roster, res.Assignments, res.Submissions))

	fmt.Fprintln(p.out, "\nPer-assignment Summary")
	fmt.Fprintln(p.out, strings.Repeat("-", 80))
	for _, line := range SummaryLines(reporter.Summarize(res.Roster, res.Assignments, res.Submissions)) {
		fmt.Fprintln(p.out, line)
	}

	fmt.Fprintln(p.out, "\nStudent Submission Habits (Average Submission Time (before deadline) and Formats Used)")
	fmt.Fprintln(p.out)
	p.PrintTable(reporter.HabitsTable(res.Roster, res.Submissions))

	byWeekday, byHour := reporter.OnTimeClock(res.Submissions, p.loc)
	fmt.Fprintln(p.out, "\nOn-time Submissions by Weekday")
	fmt.Fprintln(p.out)
	p.PrintTable(byWeekday)
	fmt.Fprintln(p.out, "\nOn-time Submissions by Hour")
	fmt.Fprintln(p.out)
	p.PrintTable(byHour)

	fmt.Fprintln(p.out, "\nFormat Popularity by Assignment")
	fmt.Fprintln(p.out)
	p.PrintTable(reporter.FormatPopularity(res.Submissions, res.Assignments))
}

// SummaryLines renders the per-assignment summary one line per
// assignment, e.g. "Day01: 12 on-time, 3 late, 5 missing (2 unchecked issues)."
func SummaryLines(summaries []reporter.AssignmentSummary) []string {
	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("%s: %d on-time, %d late, %d missing (%d unchecked issues).",
			s.Assignment, s.OnTime, s.Late, s.Missing, s.Unchecked))
	}
	return lines
}

// ─────────────────────────────────────────────────────────────────────────────
// TABLE RENDERING
// ─────────────────────────────────────────────────────────────────────────────

// PrintTable renders a table as a markdown-style pipe table with aligned
// columns.
func (p *Presenter) PrintTable(t reporter.Table) {
	fmt.Fprint(p.out, RenderTable(t))
}

// RenderTable renders a table as markdown text.
func RenderTable(t reporter.Table) string {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len(h)
	}

	cells := make([][]string, len(t.Rows))
	for ri, row := range t.Rows {
		cells[ri] = make([]string, len(t.Header))
		for ci := range t.Header {
			var s string
			if ci < len(row) {
				s = FormatCell(row[ci])
			}
			cells[ri][ci] = s
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(vals []string) {
		sb.WriteString("|")
		for i, v := range vals {
			sb.WriteString(" ")
			sb.WriteString(v)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(v)))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Header)

	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("|")
	}
	sb.WriteString("\n")

	for _, row := range cells {
		writeRow(row)
	}

	return sb.String()
}

// FormatCell renders one heterogeneous cell. Nil (an absent optional
// value) renders empty; string slices join with commas; floats keep two
// decimals.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', 2, 64)
	case []string:
		return strings.Join(c, ", ")
	default:
		return fmt.Sprintf("%v", c)
	}
}

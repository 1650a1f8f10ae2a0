// Package parser turns the two loosely structured text sources into typed
// input for the resolver: the course document (roster + deadlines) and the
// tab-delimited submission feed. Malformed input degrades silently; parsing
// here never returns an error for bad data.
package parser

import (
	"regexp"
	"strings"

	"github.com/wis-hub/course-report/internal/domain/course"
)

var (
	studentsHeadingRe = regexp.MustCompile(`(?i)^\s*##\s+students\s*$`)
	anyHeadingRe      = regexp.MustCompile(`^\s*##\s+\S`)
	linkRe            = regexp.MustCompile(`\[([^\]]+)\]\(`)

	assignHeadingRe = regexp.MustCompile(`(?i)^\s*###\s*assignment\s*\(\s*day\s*(\d{1,2})\s*\)\s*$`)
	deadlineRe      = regexp.MustCompile(`(?i)\bdead-?line:\s*([^\n\r]*)`)
	dateTimeRe      = regexp.MustCompile(`(\d{4})[.\-/](\d{2})[.\-/](\d{2})\s+(\d{2}):(\d{2})(?::(\d{2}))?`)
)

// ParseDocument extracts the student roster and the per-assignment deadline
// map from the course document text.
func ParseDocument(text string) (course.Roster, course.DeadlineMap) {
	lines := strings.Split(text, "\n")
	return parseRoster(lines), parseDeadlines(lines)
}

// parseRoster reads the first pipe table under the "Students" heading. The
// section ends at the next heading of the same or higher level. Each data
// row contributes the display name of a [Name](url) link in its first cell;
// rows without one are skipped.
func parseRoster(lines []string) course.Roster {
	start := -1
	for i, line := range lines {
		if studentsHeadingRe.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(lines)
	for j := start; j < len(lines); j++ {
		if anyHeadingRe.MatchString(lines[j]) {
			end = j
			break
		}
	}

	var table []string
	for _, ln := range lines[start:end] {
		if strings.HasPrefix(strings.TrimSpace(ln), "|") {
			table = append(table, ln)
		}
	}
	// header + separator + at least one data row
	if len(table) < 3 {
		return nil
	}

	var roster course.Roster
	seen := make(map[string]bool)
	for _, row := range table[2:] {
		cells := strings.Split(strings.Trim(strings.TrimSpace(row), "|"), "|")
		if len(cells) == 0 {
			continue
		}
		m := linkRe.FindStringSubmatch(strings.TrimSpace(cells[0]))
		if m == nil {
			continue
		}
		name := course.NormalizeName(m[1])
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		roster = append(roster, name)
	}
	return roster
}

// parseDeadlines scans for "Assignment (day N)" headings. Each heading opens
// a section running to the next such heading; the first Dead-line marker in
// the section is authoritative and later mentions are ignored.
func parseDeadlines(lines []string) course.DeadlineMap {
	deadlines := make(course.DeadlineMap)

	i := 0
	for i < len(lines) {
		m := assignHeadingRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}

		day := 0
		for _, c := range m[1] {
			day = day*10 + int(c-'0')
		}
		key := course.FormatDay(day)

		next := i + 1
		for next < len(lines) && !assignHeadingRe.MatchString(lines[next]) {
			next++
		}

		for j := i; j < next; j++ {
			dm := deadlineRe.FindStringSubmatch(lines[j])
			if dm != nil {
				deadlines[key] = canonicalDeadline(dm[1])
				break
			}
		}

		i = next
	}

	return deadlines
}

// canonicalDeadline converts captured deadline text to YYYY-MM-DDTHH:MM:SSZ.
// Seconds default to 00. When no date/time pattern is present the cleaned
// text is kept verbatim as a fallback.
func canonicalDeadline(text string) string {
	text = course.NormalizeName(text)
	m := dateTimeRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	sec := m[6]
	if sec == "" {
		sec = "00"
	}
	return m[1] + "-" + m[2] + "-" + m[3] + "T" + m[4] + ":" + m[5] + ":" + sec + "Z"
}

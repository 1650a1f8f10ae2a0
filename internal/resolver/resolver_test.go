package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wis-hub/course-report/internal/domain/course"
)

func testResolver() *Resolver {
	roster := course.Roster{"Dana Levi", "Omer Katz", "Dana Levinson"}
	return New(roster, []string{"Day01", "Day02", "Day03", "Final Project"})
}

func TestResolveStudentSubstring(t *testing.T) {
	r := testResolver()

	ev := r.Resolve(course.RawEvent{Title: "Day01 by Dana Levi"})
	assert.Equal(t, "Dana Levi", ev.Student)

	// longer roster key wins over its prefix
	ev = r.Resolve(course.RawEvent{Title: "Day01 by Dana Levinson"})
	assert.Equal(t, "Dana Levinson", ev.Student)

	// case and punctuation do not matter for the substring match
	ev = r.Resolve(course.RawEvent{Title: "day02: OMER-KATZ homework"})
	assert.Equal(t, "Omer Katz", ev.Student)
}

func TestResolveStudentTailFallbacks(t *testing.T) {
	r := testResolver()

	// "by" tail: not on the roster, kept as the cleaned guess
	ev := r.Resolve(course.RawEvent{Title: "Day01 by Someone New"})
	assert.Equal(t, "Someone New", ev.Student)

	// punctuated spelling still resolves to the canonical roster name
	ev = r.Resolve(course.RawEvent{Title: "homework by omer.katz"})
	assert.Equal(t, "Omer Katz", ev.Student)

	// hyphen tail
	ev = r.Resolve(course.RawEvent{Title: "Assignment 4 - Guest Author"})
	assert.Equal(t, "Guest Author", ev.Student)
}

func TestResolveStudentUnknown(t *testing.T) {
	r := testResolver()
	ev := r.Resolve(course.RawEvent{Title: "random noise"})
	assert.Equal(t, course.UnknownStudent, ev.Student)
}

func TestResolveAssignment(t *testing.T) {
	r := testResolver()

	ev := r.Resolve(course.RawEvent{Title: "Day02 by Dana Levi"})
	assert.Equal(t, "Day02", ev.Assignment)

	ev = r.Resolve(course.RawEvent{Title: "final project proposal by Omer Katz"})
	assert.Equal(t, "Final Project", ev.Assignment)

	// day-token fallback normalizes to the canonical identifier
	ev = r.Resolve(course.RawEvent{Title: "my work for day 7"})
	assert.Equal(t, "Day07", ev.Assignment)

	ev = r.Resolve(course.RawEvent{Title: "nothing here"})
	assert.Equal(t, course.UnknownAssignment, ev.Assignment)
}

func TestResolveIsStable(t *testing.T) {
	r := testResolver()
	ev := course.RawEvent{Title: "Day03 by Dana Levi", CreatedAt: "2025-11-05T12:00:00Z"}

	first := r.Resolve(ev)
	second := r.Resolve(ev)
	assert.Equal(t, first, second)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  course.FormatLabel
	}{
		{"Day03 by Dana Levi", "Day## by Name"},
		{"Day03 - Dana Levi", "Day## - Name"},
		{"Day03: Dana Levi", "Day##: Name"},
		{"Day03 Dana Levi", "Day## Name (no separator)"},
		{"Assignment (day 3): solution", "Assignment (day ##): ..."},
		{"Assignment 3 - solution", "Assignment ## - ..."},
		{"Assignment 3 by Dana", "Assignment ## by Name"},
		{"Assignment 3: solution", "Assignment ##: ..."},
		{"Final Project Proposal by Dana Levi", "Final Project Proposal by Name"},
		{"Final Project draft", "Final Project (other)"},
		{"solution for day 3 submitted by Dana", "... Day## ... by ..."},
		{"my assignment for day 3", "... Assignment ... day## ..."},
		{"see day 3", "Other (mentions Day##)"},
		{"assignment stuff", "Other (mentions Assignment)"},
		{"hello world", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.title), "title %q", tt.title)
	}
}

func TestClassifyOrderMatters(t *testing.T) {
	// matches both the "by" rule and the no-separator rule; the "by" rule
	// comes first and must win
	assert.Equal(t, course.FormatLabel("Day## by Name"), Classify("Day05 by Omer"))
}

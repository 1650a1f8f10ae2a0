package resolver

import (
	"regexp"
	"strings"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// formatRule pairs a title-shape pattern with its label. The rules form a
// fixed, ordered taxonomy evaluated top to bottom with early exit; patterns
// overlap, so order is significant and must not change.
type formatRule struct {
	re    *regexp.Regexp
	label course.FormatLabel
}

var formatRules = []formatRule{
	// Day-first shapes
	{regexp.MustCompile(`(?i)^\s*day\s*0?\d{1,2}\s+by\s+.+$`), "Day## by Name"},
	{regexp.MustCompile(`(?i)^\s*day\s*0?\d{1,2}\s*[-–—]\s*.+$`), "Day## - Name"},
	{regexp.MustCompile(`(?i)^\s*day\s*0?\d{1,2}\s*:\s*.+$`), "Day##: Name"},
	{regexp.MustCompile(`(?i)^\s*day\s*0?\d{1,2}\s+.+$`), "Day## Name (no separator)"},

	// Assignment-first shapes
	{regexp.MustCompile(`(?i)^\s*assignment\s*\(?\s*day\s*0?\d{1,2}\s*\)?\s*[-–—:]\s*.+$`), "Assignment (day ##): ..."},
	{regexp.MustCompile(`(?i)^\s*assignment\s*0?\d{1,2}\s*[-–—]\s*.+$`), "Assignment ## - ..."},
	{regexp.MustCompile(`(?i)^\s*assignment\s*0?\d{1,2}\s+by\s+.+$`), "Assignment ## by Name"},
	{regexp.MustCompile(`(?i)^\s*assignment\s*0?\d{1,2}\s*:\s*.+$`), "Assignment ##: ..."},

	// Final project shapes
	{regexp.MustCompile(`(?i)^\s*final\s+project\s+proposal\s+by\s+.+$`), "Final Project Proposal by Name"},
	{regexp.MustCompile(`(?i)^\s*final\s+project\s+.*$`), "Final Project (other)"},

	// Contains-anywhere catch-alls
	{regexp.MustCompile(`(?i)^.*\bday\s*0?\d{1,2}\b.*\bby\b.*`), "... Day## ... by ..."},
	{regexp.MustCompile(`(?i)^.*\bassignment\b.*\bday\s*0?\d{1,2}\b.*`), "... Assignment ... day## ..."},
}

var (
	mentionsDayRe        = regexp.MustCompile(`(?i)\bday\s*0?\d{1,2}\b`)
	mentionsByRe         = regexp.MustCompile(`(?i)\bby\b`)
	mentionsAssignmentRe = regexp.MustCompile(`(?i)\bassignment\b`)
)

// Classify returns the format label of the first rule matching the title.
// When no rule applies, a small set of "Other (mentions ...)" labels keyed
// on day/by/assignment keywords is used, then plain "Other".
func Classify(title string) course.FormatLabel {
	t := strings.TrimSpace(title)

	for _, rule := range formatRules {
		if rule.re.MatchString(t) {
			return rule.label
		}
	}

	hasDay := mentionsDayRe.MatchString(t)
	switch {
	case hasDay && mentionsByRe.MatchString(t):
		return "Other (mentions Day## + by)"
	case hasDay:
		return "Other (mentions Day##)"
	case mentionsAssignmentRe.MatchString(t):
		return "Other (mentions Assignment)"
	default:
		return "Other"
	}
}

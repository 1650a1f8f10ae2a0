// Package course contains the domain model for the submission report:
// student identities, assignment identifiers, submission events and the
// reconciled records built from them. This is the core of the pipeline and
// has no external dependencies.
package course

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Sentinel keys used when entity resolution fails. They live in the same
// mapping space as real students/assignments so downstream aggregation can
// treat unresolved events uniformly.
const (
	UnknownStudent    = "UNKNOWN"
	UnknownAssignment = "UNKNOWN"
)

var (
	parenRe    = regexp.MustCompile(`\([^)]*\)`)
	spaceRe    = regexp.MustCompile(`\s+`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)
	dayIDRe    = regexp.MustCompile(`(?i)^day(\d{1,2})$`)
)

// NormalizeName cleans a display name: parenthetical text is dropped and
// runs of whitespace collapse to a single space.
func NormalizeName(s string) string {
	s = parenRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// SimplifyName reduces a name to a loose matching key: case-folded, with
// every non-alphanumeric run replaced by a space and whitespace collapsed.
// Two spellings of the same person should simplify to the same key.
func SimplifyName(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return NormalizeName(s)
}

// FormatDay returns the canonical assignment identifier for a day number,
// e.g. FormatDay(3) == "Day03".
func FormatDay(n int) string {
	return fmt.Sprintf("Day%02d", n)
}

// DayNumber extracts the day number from a canonical Day<NN> identifier.
// The second return value is false for non-day assignment names.
func DayNumber(id string) (int, bool) {
	m := dayIDRe.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortAssignments orders assignment identifiers for display: day-named
// assignments first in numeric order, everything else after them in
// case-insensitive alphabetical order. The input is not modified.
func SortAssignments(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.SliceStable(out, func(i, j int) bool {
		ni, iok := DayNumber(out[i])
		nj, jok := DayNumber(out[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok != jok:
			return iok
		default:
			return strings.ToLower(out[i]) < strings.ToLower(out[j])
		}
	})
	return out
}

// Roster is the ordered list of known students. Order is first-occurrence
// order from the source document; names are unique case-insensitively.
type Roster []string

// Contains reports whether a canonical name is on the roster.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}

// DeadlineMap maps a canonical assignment identifier to its deadline as an
// ISO-8601 UTC string (YYYY-MM-DDTHH:MM:SSZ). When the source text held no
// parseable date/time, the cleaned text is stored verbatim instead; such
// values simply fail to parse downstream and yield absent deltas.
type DeadlineMap map[string]string

// Assignments returns the assignment identifiers present in the map, in
// display order (see SortAssignments).
func (d DeadlineMap) Assignments() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	return SortAssignments(names)
}

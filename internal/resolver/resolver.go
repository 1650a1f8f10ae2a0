// Package resolver maps free-text event titles to canonical students and
// assignments and classifies each title's textual shape. The matching is
// heuristic and best-effort: titles are written by many different people
// with no fixed convention, so every rule here is an ordered fallback and
// failures land in the UNKNOWN buckets instead of erroring.
package resolver

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/wis-hub/course-report/internal/domain/course"
)

// minKeyLen guards the substring match against spurious hits on very short
// names.
const minKeyLen = 4

var (
	byTailRe     = regexp.MustCompile(`(?i)\bby\s+(.+?)\s*$`)
	hyphenTailRe = regexp.MustCompile(`\s-\s(.+?)\s*$`)
	dayTokenRe   = regexp.MustCompile(`(?i)\bday\s*[-_ ]*0?(\d{1,2})\b`)
)

type lookupKey struct {
	key       string
	canonical string
}

// Resolver holds the lookup structures built from the roster and the known
// assignment names. Build it once per document fetch; it is immutable and
// safe for reuse across events.
type Resolver struct {
	rosterKeys  []lookupKey // insertion order: ties go to the earlier roster entry
	rosterByKey map[string]string

	assignmentKeys  []lookupKey // longest key first, stable over input order
	assignmentByKey map[string]string
}

// New builds a Resolver. For every roster name two keys are registered: the
// case-folded name and its simplified form. Assignment keys are matched
// longest-first so "Day12" never loses to "Day1".
func New(roster course.Roster, assignmentNames []string) *Resolver {
	r := &Resolver{
		rosterByKey:     make(map[string]string),
		assignmentByKey: make(map[string]string),
	}

	for _, name := range roster {
		for _, key := range []string{strings.ToLower(name), course.SimplifyName(name)} {
			if key == "" {
				continue
			}
			if _, dup := r.rosterByKey[key]; dup {
				continue
			}
			r.rosterByKey[key] = name
			r.rosterKeys = append(r.rosterKeys, lookupKey{key: key, canonical: name})
		}
	}

	for _, name := range assignmentNames {
		key := strings.ToLower(name)
		if _, dup := r.assignmentByKey[key]; dup {
			continue
		}
		r.assignmentByKey[key] = name
		r.assignmentKeys = append(r.assignmentKeys, lookupKey{key: key, canonical: name})
	}
	sort.SliceStable(r.assignmentKeys, func(i, j int) bool {
		return len(r.assignmentKeys[i].key) > len(r.assignmentKeys[j].key)
	})

	return r
}

// Resolve maps one raw event to its best-guess student and assignment and
// classifies the title format. Unresolvable entities come back as the
// UNKNOWN sentinels.
func (r *Resolver) Resolve(ev course.RawEvent) course.ResolvedEvent {
	out := course.ResolvedEvent{
		RawEvent:   ev,
		Student:    course.UnknownStudent,
		Assignment: course.UnknownAssignment,
		Format:     Classify(ev.Title),
	}
	if s := r.student(ev.Title); s != "" {
		out.Student = s
	}
	if a := r.assignment(ev.Title); a != "" {
		out.Assignment = a
	}
	return out
}

// student applies the resolution precedence: longest roster-key substring
// match first, then the tail after a "by" marker, then the tail after a
// trailing hyphen separator. Tail guesses are mapped back to a canonical
// roster name when their simplified form is known, otherwise kept as-is.
func (r *Resolver) student(title string) string {
	simplified := course.SimplifyName(title)

	best := ""
	bestLen := 0
	for _, lk := range r.rosterKeys {
		if len(lk.key) < minKeyLen {
			continue
		}
		if strings.Contains(simplified, lk.key) && len(lk.key) > bestLen {
			best = lk.canonical
			bestLen = len(lk.key)
		}
	}
	if best != "" {
		return best
	}

	if m := byTailRe.FindStringSubmatch(title); m != nil {
		return r.canonicalOrGuess(m[1])
	}
	if m := hyphenTailRe.FindStringSubmatch(title); m != nil {
		return r.canonicalOrGuess(m[1])
	}
	return ""
}

func (r *Resolver) canonicalOrGuess(tail string) string {
	guess := course.NormalizeName(tail)
	if canon, ok := r.rosterByKey[course.SimplifyName(guess)]; ok {
		return canon
	}
	return guess
}

// assignment prefers a known assignment name appearing in the title, then
// falls back to a day-number token normalized to Day<NN>.
func (r *Resolver) assignment(title string) string {
	t := strings.ToLower(title)
	for _, lk := range r.assignmentKeys {
		if strings.Contains(t, lk.key) {
			return lk.canonical
		}
	}

	if m := dayTokenRe.FindStringSubmatch(title); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return course.FormatDay(n)
		}
	}
	return ""
}

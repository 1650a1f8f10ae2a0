package course

import "time"

// Delta is the signed distance between a submission and its deadline.
// Negative or zero means on time, positive means late.
type Delta struct {
	// Seconds is submission time minus deadline time.
	Seconds int64

	// Human is a readable rendering of the same interval.
	Human string
}

// NewDelta builds a Delta from a submission/deadline pair.
func NewDelta(submitted, deadline time.Time) *Delta {
	d := submitted.Sub(deadline)
	return &Delta{
		Seconds: int64(d / time.Second),
		Human:   d.String(),
	}
}

// TimedEvent is a ResolvedEvent with its derived delta attached. Delta is
// nil when either the event timestamp or the deadline failed to parse,
// never defaulted to zero.
type TimedEvent struct {
	ResolvedEvent
	Delta *Delta
}

// SubmissionRecord is the canonical per-(student, assignment) record.
// Latest is the figure of record: the retained event with the
// lexicographically greatest timestamp string. History holds every event
// that mapped to the pair, including the latest, in feed order.
type SubmissionRecord struct {
	Latest  TimedEvent
	History []TimedEvent
}

// SubmissionStatus classifies a record for reporting.
type SubmissionStatus string

const (
	OnTime  SubmissionStatus = "On-time"
	Late    SubmissionStatus = "Late"
	Missing SubmissionStatus = "Missing"
)

// StatusOf classifies a record: Missing when there is no record or its
// delta is absent, Late when the delta is positive, On-time otherwise.
func StatusOf(rec *SubmissionRecord) SubmissionStatus {
	if rec == nil || rec.Latest.Delta == nil {
		return Missing
	}
	if rec.Latest.Delta.Seconds > 0 {
		return Late
	}
	return OnTime
}

// SubmissionSet maps student -> assignment -> record. Keys are canonical
// roster names / Day<NN> identifiers or the UNKNOWN sentinels.
type SubmissionSet map[string]map[string]*SubmissionRecord

// Record returns the record for a (student, assignment) pair, or nil.
func (s SubmissionSet) Record(student, assignment string) *SubmissionRecord {
	if per, ok := s[student]; ok {
		return per[assignment]
	}
	return nil
}

// Unknown returns the per-assignment records of the UNKNOWN student bucket.
// Reporting layers flag a non-empty bucket as a warning.
func (s SubmissionSet) Unknown() map[string]*SubmissionRecord {
	return s[UnknownStudent]
}

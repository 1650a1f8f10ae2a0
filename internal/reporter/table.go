// Package reporter builds the tabular outputs of the submission report:
// the per-student status table, the per-assignment summary, the student
// habits table, and the distribution tables that back external chart
// renderers. Everything here is a pure read-only fold over a SubmissionSet.
package reporter

// Table is a header row plus rows of heterogeneous typed cells (strings,
// integers, enum-like strings, optional floats). Consumers such as the
// console presenter decide how to render each cell.
type Table struct {
	Header []string
	Rows   [][]any
}

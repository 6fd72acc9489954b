// Package seed orchestrates the scrape pipeline: fetch the per-game page,
// extract its table, normalize to canonical records, and atomically replace
// the destination table.
package seed

import "fmt"

// Result tracks counts from one pipeline run. The pipeline is
// all-or-nothing: Err carries the first stage failure and everything after
// that stage stays zero.
type Result struct {
	RowsExtracted     int
	HeaderRowsDropped int
	RowsPadded        int
	RowsTruncated     int
	MissingColumns    []string
	Columns           int
	RowsWritten       int64
	Err               error
}

// Failed reports whether the run aborted.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	errs := 0
	if r.Err != nil {
		errs = 1
	}
	return fmt.Sprintf(
		"extracted=%d dropped=%d padded=%d truncated=%d missing_cols=%d columns=%d written=%d errors=%d",
		r.RowsExtracted, r.HeaderRowsDropped, r.RowsPadded, r.RowsTruncated,
		len(r.MissingColumns), r.Columns, r.RowsWritten, errs,
	)
}

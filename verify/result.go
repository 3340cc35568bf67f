package verify

import "github.com/mm-verify/mm/db"

// Outcome classifies how a single provable's verification concluded.
type Outcome byte

const (
	// Verified means every step replayed cleanly and the final stack
	// matched the declared conclusion.
	Verified Outcome = iota
	// Incomplete means the proof contained an UNKNOWN/`?` step; per the
	// error-handling design this is reported, never silently treated as
	// success.
	Incomplete
)

// ProvableResult records the outcome for a single provable.
type ProvableResult struct {
	Label   db.LabelID
	Outcome Outcome
}

// Result summarizes a full verification run, in provable declaration
// order, for CLI reporting.
type Result struct {
	Provables  []ProvableResult
	Verified   int
	Incomplete int
}

func (r *Result) record(label db.LabelID, outcome Outcome) {
	r.Provables = append(r.Provables, ProvableResult{Label: label, Outcome: outcome})
	switch outcome {
	case Verified:
		r.Verified++
	case Incomplete:
		r.Incomplete++
	}
}

// OK reports whether every provable verified with no incomplete proofs.
func (r *Result) OK() bool {
	return r.Incomplete == 0
}

package verify

import "github.com/mm-verify/mm/db"

// StepKind distinguishes the four kinds of decoded proof step.
type StepKind byte

const (
	// StepLabel replays a floating hypothesis, essential hypothesis, or
	// assertion application named Label.
	StepLabel StepKind = iota
	// StepSave pushes a copy of the current stack top onto the saved list,
	// without popping.
	StepSave
	// StepLoad pushes a copy of a previously saved stack top.
	StepLoad
	// StepUnknown marks an incomplete proof step (`?`).
	StepUnknown
)

// Step is one decoded proof instruction.
type Step struct {
	Kind      StepKind
	Label     db.LabelID
	LoadIndex int
}

// decodeProof turns a.Proof into a flat step stream, resolving every label
// spelling against database. Unresolvable label spellings are reported as
// ProofErrors here (not in package parse): per the error-handling design, an
// unrecognized label reference belongs to proof verification, not parsing.
func decodeProof(database *db.Database, a *db.Assertion) ([]Step, error) {
	proof := a.Proof
	name := database.LabelName(a.Label)
	if !proof.Compressed {
		return decodeUncompressed(database, name, proof)
	}
	return decodeCompressed(database, name, a.Frame.Hypotheses, proof)
}

func decodeUncompressed(database *db.Database, name string, proof *db.RawProof) ([]Step, error) {
	steps := make([]Step, 0, len(proof.Tokens))
	for i, tok := range proof.Tokens {
		if tok.Unknown {
			steps = append(steps, Step{Kind: StepUnknown})
			continue
		}
		lbl, ok := database.LookupLabel(tok.Label)
		if !ok {
			return nil, proofErrorf(name, i, "unrecognized label %q", tok.Label)
		}
		steps = append(steps, Step{Kind: StepLabel, Label: lbl})
	}
	return steps, nil
}

func decodeCompressed(database *db.Database, name string, mandatory []db.LabelID, proof *db.RawProof) ([]Step, error) {
	extra := make([]db.LabelID, 0, len(proof.Extra))
	for i, spelling := range proof.Extra {
		lbl, ok := database.LookupLabel(spelling)
		if !ok {
			return nil, proofErrorf(name, i, "unrecognized label %q", spelling)
		}
		extra = append(extra, lbl)
	}

	var steps []Step
	acc := 0
	for i := 0; i < len(proof.Chars); i++ {
		c := proof.Chars[i]
		switch {
		case c == 'Z':
			steps = append(steps, Step{Kind: StepSave})
			acc = 0
		case c == '?':
			steps = append(steps, Step{Kind: StepUnknown})
			acc = 0
		case c >= 'A' && c <= 'T':
			x := acc*20 + int(c-'A') + 1
			acc = 0
			step, err := mapProofIndex(x, mandatory, extra, name, len(steps))
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		case c >= 'U' && c <= 'Y':
			acc = acc*5 + int(c-'T')
		default:
			return nil, proofErrorf(name, len(steps), "invalid character %q in compressed proof", c)
		}
	}
	return steps, nil
}

// mapProofIndex maps a decoded integer x onto a mandatory-hypothesis label,
// an extra-label, or a Load step, per the M/L/Load(k) indexing rule. The
// final branch (negative k) can only be reached if x were smaller than
// len(mandatory)+len(extra)+1, which the two preceding bounds checks
// already rule out; it is kept as a defensive out-of-range report rather
// than a panic.
func mapProofIndex(x int, mandatory, extra []db.LabelID, name string, step int) (Step, error) {
	if x <= len(mandatory) {
		return Step{Kind: StepLabel, Label: mandatory[x-1]}, nil
	}
	if x <= len(mandatory)+len(extra) {
		return Step{Kind: StepLabel, Label: extra[x-len(mandatory)-1]}, nil
	}
	k := x - len(mandatory) - len(extra) - 1
	if k < 0 {
		return Step{}, proofErrorf(name, step, "compressed proof step index out of range")
	}
	return Step{Kind: StepLoad, LoadIndex: k}, nil
}

package verify

import "github.com/mm-verify/mm/db"

// Expr is a typed symbol sequence sitting on the proof verifier's operand
// stack: the result of a floating hypothesis, an essential hypothesis, or
// an assertion application.
type Expr struct {
	Typecode db.SymbolID
	Symbols  []db.SymbolID
}

func symbolsEqual(a, b []db.SymbolID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// substitution maps a mandatory variable to the symbol sequence bound to
// it while unifying a proof step's arguments against an assertion's
// mandatory hypotheses.
type substitution map[db.SymbolID][]db.SymbolID

// applySubst walks seq left to right, replacing every variable bound in
// sigma with its substituted sequence and passing constants through
// unchanged. It is homomorphic over concatenation by construction, since
// each input symbol contributes independently to the output.
func applySubst(sigma substitution, seq []db.SymbolID) []db.SymbolID {
	out := make([]db.SymbolID, 0, len(seq))
	for _, s := range seq {
		if repl, ok := sigma[s]; ok {
			out = append(out, repl...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// variablesIn returns the subset of syms that are active variables in
// scope, preserving order and duplicates. The disjoint cross-product check
// in checkDisjoints reports the first violating pair in this order; a
// duplicate only repeats a check.
func variablesIn(database *db.Database, syms []db.SymbolID, scope *db.Scope) []db.SymbolID {
	var out []db.SymbolID
	for _, s := range syms {
		if database.IsVariable(s) && scope.IsActiveVariable(s) {
			out = append(out, s)
		}
	}
	return out
}

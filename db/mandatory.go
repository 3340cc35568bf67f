package db

import "sort"

// computeMandatoryFrame derives the MandatoryFrame of an assertion from its
// frozen scope and conclusion.
func computeMandatoryFrame(scope *Scope, conclusion []SymbolID) MandatoryFrame {
	mandatory := make(map[SymbolID]struct{})
	for _, s := range conclusion {
		if scope.IsActiveVariable(s) {
			mandatory[s] = struct{}{}
		}
	}
	for _, e := range scope.Essentials {
		for _, s := range e.Symbols {
			if scope.IsActiveVariable(s) {
				mandatory[s] = struct{}{}
			}
		}
	}

	hyps := make([]LabelID, 0, len(mandatory)+len(scope.Essentials))
	for v := range mandatory {
		if lbl, ok := scope.VarFloating[v]; ok {
			hyps = append(hyps, lbl)
		}
	}
	for lbl := range scope.Essentials {
		hyps = append(hyps, lbl)
	}
	sort.Slice(hyps, func(i, j int) bool { return hyps[i] < hyps[j] })

	vars := make([]SymbolID, 0, len(mandatory))
	for v := range mandatory {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	var disjoints []DisjointPair
	for p := range scope.Disjoints {
		_, loOK := mandatory[p.Lo]
		_, hiOK := mandatory[p.Hi]
		if loOK && hiOK {
			disjoints = append(disjoints, p)
		}
	}
	sort.Slice(disjoints, func(i, j int) bool {
		if disjoints[i].Lo != disjoints[j].Lo {
			return disjoints[i].Lo < disjoints[j].Lo
		}
		return disjoints[i].Hi < disjoints[j].Hi
	})

	return MandatoryFrame{Variables: vars, Hypotheses: hyps, Disjoints: disjoints}
}

package verify

import "github.com/mm-verify/mm/db"

// machine replays one provable's decoded proof steps over an operand
// stack: a small bundle of mutable state (stack, saved-steps list) driven
// by a dispatch loop one level up in Verify.
type machine struct {
	database *db.Database
	provable *db.Assertion
	stack    []Expr
	saved    []Expr
}

func newMachine(database *db.Database, provable *db.Assertion) *machine {
	return &machine{database: database, provable: provable}
}

// step processes one decoded Step, returning incomplete=true if it was a
// StepUnknown placeholder.
func (m *machine) step(i int, s Step) (incomplete bool, err error) {
	name := m.database.LabelName(m.provable.Label)
	switch s.Kind {
	case StepUnknown:
		return true, nil
	case StepSave:
		if len(m.stack) == 0 {
			return false, proofErrorf(name, i, "SAVE with an empty stack")
		}
		m.saved = append(m.saved, m.stack[len(m.stack)-1])
		return false, nil
	case StepLoad:
		if s.LoadIndex < 0 || s.LoadIndex >= len(m.saved) {
			return false, proofErrorf(name, i, "load index %d out of range", s.LoadIndex)
		}
		m.stack = append(m.stack, m.saved[s.LoadIndex])
		return false, nil
	default: // StepLabel
		return false, m.label(i, s.Label)
	}
}

func (m *machine) label(i int, lbl db.LabelID) error {
	name := m.database.LabelName(m.provable.Label)
	scope := &m.provable.Scope
	if fh, ok := scope.Floatings[lbl]; ok {
		m.stack = append(m.stack, Expr{Typecode: fh.Typecode, Symbols: []db.SymbolID{fh.Var}})
		return nil
	}
	if eh, ok := scope.Essentials[lbl]; ok {
		m.stack = append(m.stack, Expr{Typecode: eh.Typecode, Symbols: append([]db.SymbolID(nil), eh.Symbols...)})
		return nil
	}
	if target, ok := m.database.Assertion(lbl); ok {
		return m.apply(i, target)
	}
	return proofErrorf(name, i, "unrecognized label %q", m.database.LabelName(lbl))
}

// apply unifies the top len(target.Frame.Hypotheses) stack entries against
// target's mandatory hypotheses, checks target's mandatory disjoint
// restrictions against the provable's own scope, and pushes the
// substituted conclusion.
func (m *machine) apply(i int, target *db.Assertion) error {
	name := m.database.LabelName(m.provable.Label)
	mand := target.Frame.Hypotheses
	n := len(mand)
	if len(m.stack) < n {
		return proofErrorf(name, i, "stack underflow applying %q", m.database.LabelName(target.Label))
	}
	args := m.stack[len(m.stack)-n:]
	m.stack = m.stack[:len(m.stack)-n]

	sigma := make(substitution, n)
	for idx, hyp := range mand {
		arg := args[idx]
		if fh, ok := target.Scope.Floatings[hyp]; ok {
			if arg.Typecode != fh.Typecode {
				return proofErrorf(name, i, "type mismatch binding %q: expected %q, got %q",
					m.database.LabelName(hyp), m.database.SymbolName(fh.Typecode), m.database.SymbolName(arg.Typecode))
			}
			if existing, bound := sigma[fh.Var]; bound {
				if !symbolsEqual(existing, arg.Symbols) {
					return proofErrorf(name, i, "incompatible substitutions for variable %q", m.database.SymbolName(fh.Var))
				}
			} else {
				sigma[fh.Var] = arg.Symbols
			}
			continue
		}
		eh := target.Scope.Essentials[hyp]
		if arg.Typecode != eh.Typecode {
			return proofErrorf(name, i, "type mismatch satisfying %q: expected %q, got %q",
				m.database.LabelName(hyp), m.database.SymbolName(eh.Typecode), m.database.SymbolName(arg.Typecode))
		}
		want := applySubst(sigma, eh.Symbols)
		if !symbolsEqual(want, arg.Symbols) {
			return proofErrorf(name, i, "essential hypothesis %q not satisfied", m.database.LabelName(hyp))
		}
	}

	if err := m.checkDisjoints(i, target, sigma); err != nil {
		return err
	}

	result := Expr{Typecode: target.Typecode, Symbols: applySubst(sigma, target.Conclusion)}
	m.stack = append(m.stack, result)
	return nil
}

func (m *machine) checkDisjoints(i int, target *db.Assertion, sigma substitution) error {
	name := m.database.LabelName(m.provable.Label)
	for _, pair := range target.Frame.Disjoints {
		xs, xok := sigma[pair.Lo]
		ys, yok := sigma[pair.Hi]
		if !xok || !yok {
			continue
		}
		vx := variablesIn(m.database, xs, &m.provable.Scope)
		vy := variablesIn(m.database, ys, &m.provable.Scope)
		for _, a := range vx {
			for _, b := range vy {
				if a == b || !m.provable.Scope.HasDisjoint(a, b) {
					return proofErrorf(name, i, "disjoint restriction violated between %q and %q",
						m.database.SymbolName(a), m.database.SymbolName(b))
				}
			}
		}
	}
	return nil
}

// finish checks that exactly one element remains on the stack and that it
// equals the provable's declared conclusion.
func (m *machine) finish() error {
	name := m.database.LabelName(m.provable.Label)
	if len(m.stack) != 1 {
		return proofErrorf(name, -1, "proof left %d elements on the stack, expected 1", len(m.stack))
	}
	got := m.stack[0]
	if got.Typecode != m.provable.Typecode || !symbolsEqual(got.Symbols, m.provable.Conclusion) {
		return proofErrorf(name, -1, "did not yield the expected conclusion")
	}
	return nil
}

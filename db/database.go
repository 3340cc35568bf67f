package db

import (
	"github.com/pkg/errors"
)

// Database holds every symbol, label, axiom, and provable declared while
// parsing a Metamath source. It is built up exclusively by the parse
// package during a single build phase, then treated as immutable by the
// verify package.
type Database struct {
	names  map[string]nameEntry
	syms   []symbolRecord
	labels []labelRecord

	// Constants and Variables list SymbolIDs in declaration order, for
	// statistics and iteration; they grow monotonically and are never
	// pruned on scope exit (only Scope.Variables, the active subset, is).
	Constants []SymbolID
	Variables []SymbolID

	// Axioms and Provables list assertions in declaration order.
	Axioms    []*Assertion
	Provables []*Assertion

	assertions map[LabelID]*Assertion
}

// New returns an empty Database.
func New() *Database {
	return &Database{
		names:      make(map[string]nameEntry),
		assertions: make(map[LabelID]*Assertion),
	}
}

// SymbolName returns the spelling of a SymbolID.
func (d *Database) SymbolName(id SymbolID) string { return d.syms[id].name }

// LabelName returns the spelling of a LabelID.
func (d *Database) LabelName(id LabelID) string { return d.labels[id].name }

// LookupSymbol resolves a spelling to a SymbolID, if one is interned as a
// constant or variable.
func (d *Database) LookupSymbol(name string) (SymbolID, bool) {
	e, ok := d.names[name]
	if !ok || (e.kind != nameConstant && e.kind != nameVariable) {
		return 0, false
	}
	return SymbolID(e.id), true
}

// LookupLabel resolves a spelling to a LabelID, if one is interned.
func (d *Database) LookupLabel(name string) (LabelID, bool) {
	e, ok := d.names[name]
	if !ok || e.kind != nameLabel {
		return 0, false
	}
	return LabelID(e.id), true
}

// IsConstant reports whether id names a constant.
func (d *Database) IsConstant(id SymbolID) bool { return d.syms[id].kind == KindConstant }

// IsVariable reports whether id names a variable.
func (d *Database) IsVariable(id SymbolID) bool { return d.syms[id].kind == KindVariable }

// Assertion returns the axiom or provable declared under label, if any.
func (d *Database) Assertion(label LabelID) (*Assertion, bool) {
	a, ok := d.assertions[label]
	return a, ok
}

// AddConstant interns a new constant. It errors if the spelling is already
// used by a constant, variable, or label.
func (d *Database) AddConstant(name string) (SymbolID, error) {
	if e, ok := d.names[name]; ok {
		return 0, errors.Errorf("%q is already defined as a %s", name, kindName(e.kind))
	}
	id := SymbolID(len(d.syms))
	d.syms = append(d.syms, symbolRecord{name: name, kind: KindConstant, typecode: invalidID})
	d.names[name] = nameEntry{kind: nameConstant, id: int32(id)}
	d.Constants = append(d.Constants, id)
	return id, nil
}

// AddVariable interns or reactivates a variable in scope. It errors if the
// spelling is already used by a constant or label, or if the variable is
// already active in the current scope. A variable reactivated from an
// outer, now-inactive scope keeps any type previously bound to it.
func (d *Database) AddVariable(scope *Scope, name string) (SymbolID, error) {
	e, ok := d.names[name]
	if !ok {
		id := SymbolID(len(d.syms))
		d.syms = append(d.syms, symbolRecord{name: name, kind: KindVariable, typecode: invalidID})
		d.names[name] = nameEntry{kind: nameVariable, id: int32(id)}
		d.Variables = append(d.Variables, id)
		scope.Variables[id] = struct{}{}
		return id, nil
	}
	if e.kind != nameVariable {
		return 0, errors.Errorf("%q is already defined as a %s", name, kindName(e.kind))
	}
	id := SymbolID(e.id)
	if scope.IsActiveVariable(id) {
		return 0, errors.Errorf("%q is already an active variable in this scope", name)
	}
	scope.Variables[id] = struct{}{}
	return id, nil
}

// AddLabel interns a new label. It errors if the spelling is already used
// by a constant, variable, or another label.
func (d *Database) AddLabel(name string) (LabelID, error) {
	if e, ok := d.names[name]; ok {
		return 0, errors.Errorf("%q is already defined as a %s", name, kindName(e.kind))
	}
	id := LabelID(len(d.labels))
	d.labels = append(d.labels, labelRecord{name: name})
	d.names[name] = nameEntry{kind: nameLabel, id: int32(id)}
	return id, nil
}

// FloatingStmt declares a $f hypothesis in scope.
func (d *Database) FloatingStmt(scope *Scope, label, typecode, v string) (*FloatingHyp, error) {
	lbl, err := d.AddLabel(label)
	if err != nil {
		return nil, err
	}
	tc, err := d.requireConstant(typecode)
	if err != nil {
		return nil, err
	}
	vid, err := d.requireActiveVariable(scope, v)
	if err != nil {
		return nil, err
	}
	rec := &d.syms[vid]
	if rec.typecode != invalidID && rec.typecode != tc {
		return nil, errors.Errorf("variable %q already has type %q, cannot rebind to %q", v, d.SymbolName(rec.typecode), typecode)
	}
	rec.typecode = tc

	fh := FloatingHyp{Label: lbl, Typecode: tc, Var: vid}
	scope.Floatings[lbl] = fh
	scope.VarFloating[vid] = lbl
	return &fh, nil
}

// EssentialStmt declares an $e hypothesis in scope.
func (d *Database) EssentialStmt(scope *Scope, label, typecode string, symNames []string) (*EssentialHyp, error) {
	lbl, err := d.AddLabel(label)
	if err != nil {
		return nil, err
	}
	tc, err := d.requireConstant(typecode)
	if err != nil {
		return nil, err
	}
	syms, err := d.resolveMandatorySymbols(scope, symNames)
	if err != nil {
		return nil, err
	}
	eh := EssentialHyp{Label: lbl, Typecode: tc, Symbols: syms}
	scope.Essentials[lbl] = eh
	return &eh, nil
}

// DisjointStmt declares a $d statement, adding every unordered pair among
// vars to scope.Disjoints.
func (d *Database) DisjointStmt(scope *Scope, varNames []string) error {
	if len(varNames) < 2 {
		return errors.New("a disjoint statement requires at least two variables")
	}
	ids := make([]SymbolID, 0, len(varNames))
	seen := make(map[string]bool, len(varNames))
	for _, name := range varNames {
		if seen[name] {
			return errors.Errorf("variable %q appears more than once in a disjoint statement", name)
		}
		seen[name] = true
		id, err := d.requireActiveVariable(scope, name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			scope.AddDisjoint(ids[i], ids[j])
		}
	}
	return nil
}

// AxiomStmt declares an $a assertion, freezing a copy of scope.
func (d *Database) AxiomStmt(scope *Scope, label, typecode string, symNames []string) (*Assertion, error) {
	return d.declareAssertion(scope, label, typecode, symNames, KindAxiom, nil)
}

// ProvableStmt declares a $p assertion, freezing a copy of scope and
// attaching its raw, not-yet-decoded proof.
func (d *Database) ProvableStmt(scope *Scope, label, typecode string, symNames []string, proof *RawProof) (*Assertion, error) {
	return d.declareAssertion(scope, label, typecode, symNames, KindProvable, proof)
}

func (d *Database) declareAssertion(scope *Scope, label, typecode string, symNames []string, kind AssertionKind, proof *RawProof) (*Assertion, error) {
	lbl, err := d.AddLabel(label)
	if err != nil {
		return nil, err
	}
	tc, err := d.requireConstant(typecode)
	if err != nil {
		return nil, err
	}
	syms, err := d.resolveMandatorySymbols(scope, symNames)
	if err != nil {
		return nil, err
	}
	frozen := scope.Clone()
	a := &Assertion{
		Label:      lbl,
		Kind:       kind,
		Typecode:   tc,
		Conclusion: syms,
		Scope:      *frozen,
		Frame:      computeMandatoryFrame(frozen, syms),
		Proof:      proof,
	}
	d.assertions[lbl] = a
	if kind == KindAxiom {
		d.Axioms = append(d.Axioms, a)
	} else {
		d.Provables = append(d.Provables, a)
	}
	return a, nil
}

func (d *Database) requireConstant(name string) (SymbolID, error) {
	id, ok := d.LookupSymbol(name)
	if !ok || !d.IsConstant(id) {
		return 0, errors.Errorf("%q is not a declared constant", name)
	}
	return id, nil
}

func (d *Database) requireActiveVariable(scope *Scope, name string) (SymbolID, error) {
	id, ok := d.LookupSymbol(name)
	if !ok || !d.IsVariable(id) || !scope.IsActiveVariable(id) {
		return 0, errors.Errorf("%q is not an active variable", name)
	}
	return id, nil
}

// resolveMandatorySymbols resolves the symbol sequence of an $e, $a, or $p
// statement: every symbol must be an active constant or an active variable
// carrying an active floating hypothesis.
func (d *Database) resolveMandatorySymbols(scope *Scope, symNames []string) ([]SymbolID, error) {
	syms := make([]SymbolID, 0, len(symNames))
	for _, name := range symNames {
		id, ok := d.LookupSymbol(name)
		if !ok {
			return nil, errors.Errorf("%q is not a declared constant or active variable", name)
		}
		if d.IsConstant(id) {
			syms = append(syms, id)
			continue
		}
		if !scope.IsActiveVariable(id) {
			return nil, errors.Errorf("%q is not an active variable", name)
		}
		if _, ok := scope.VarFloating[id]; !ok {
			return nil, errors.Errorf("variable %q has no active floating hypothesis", name)
		}
		syms = append(syms, id)
	}
	return syms, nil
}

func kindName(k nameKind) string {
	switch k {
	case nameConstant:
		return "constant"
	case nameVariable:
		return "variable"
	default:
		return "label"
	}
}

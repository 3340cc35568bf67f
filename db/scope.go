package db

// Scope is the currently active set of variables, floating and essential
// hypotheses, and disjoint pairs. Constants and labels, once declared, are
// permanent and never appear here: they live directly in the Database.
//
// A Scope is a plain value type with map-backed fields, copied wholesale at
// `${`/`$}` boundaries and at assertion declarations (see Clone). Scopes
// are small in practice, so a deep copy on every block/assertion boundary
// is cheap and keeps every Assertion's frozen snapshot fully independent of
// later mutation.
type Scope struct {
	// Variables is the set of currently active variable ids.
	Variables map[SymbolID]struct{}
	// VarFloating maps an active variable to the label of the floating
	// hypothesis currently binding it.
	VarFloating map[SymbolID]LabelID
	// Floatings maps a label to its floating hypothesis, for labels
	// active in this scope.
	Floatings map[LabelID]FloatingHyp
	// Essentials maps a label to its essential hypothesis, for labels
	// active in this scope.
	Essentials map[LabelID]EssentialHyp
	// Disjoints is the set of disjoint-variable pairs active in this
	// scope.
	Disjoints map[DisjointPair]struct{}
}

// NewScope returns an empty, initialized Scope (the Top-context scope at
// the very start of parsing).
func NewScope() *Scope {
	return &Scope{
		Variables:   make(map[SymbolID]struct{}),
		VarFloating: make(map[SymbolID]LabelID),
		Floatings:   make(map[LabelID]FloatingHyp),
		Essentials:  make(map[LabelID]EssentialHyp),
		Disjoints:   make(map[DisjointPair]struct{}),
	}
}

// Clone returns a deep, independent copy of s.
func (s *Scope) Clone() *Scope {
	c := &Scope{
		Variables:   make(map[SymbolID]struct{}, len(s.Variables)),
		VarFloating: make(map[SymbolID]LabelID, len(s.VarFloating)),
		Floatings:   make(map[LabelID]FloatingHyp, len(s.Floatings)),
		Essentials:  make(map[LabelID]EssentialHyp, len(s.Essentials)),
		Disjoints:   make(map[DisjointPair]struct{}, len(s.Disjoints)),
	}
	for k, v := range s.Variables {
		c.Variables[k] = v
	}
	for k, v := range s.VarFloating {
		c.VarFloating[k] = v
	}
	for k, v := range s.Floatings {
		c.Floatings[k] = v
	}
	for k, v := range s.Essentials {
		c.Essentials[k] = v
	}
	for k, v := range s.Disjoints {
		c.Disjoints[k] = v
	}
	return c
}

// IsActiveVariable reports whether v is currently active in s.
func (s *Scope) IsActiveVariable(v SymbolID) bool {
	_, ok := s.Variables[v]
	return ok
}

// AddDisjoint adds the canonicalized pair (a, b) to s.Disjoints.
// Re-adding an existing pair is a no-op: spec mandates idempotent
// behavior for redeclared disjoint statements (see DESIGN.md Open
// Questions).
func (s *Scope) AddDisjoint(a, b SymbolID) {
	s.Disjoints[NewDisjointPair(a, b)] = struct{}{}
}

// HasDisjoint reports whether the canonicalized pair (a, b) is present.
func (s *Scope) HasDisjoint(a, b SymbolID) bool {
	if a == b {
		return false
	}
	_, ok := s.Disjoints[NewDisjointPair(a, b)]
	return ok
}

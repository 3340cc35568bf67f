package db

// FloatingHyp declares that Var has syntactic type Typecode. A variable may
// be bound to at most one type across the whole database, even across
// scopes.
type FloatingHyp struct {
	Label    LabelID
	Typecode SymbolID
	Var      SymbolID
}

// EssentialHyp is a logical premise of an assertion. Every symbol in
// Symbols is, at declaration time, either an active constant or an active
// variable that already carries a floating hypothesis.
type EssentialHyp struct {
	Label    LabelID
	Typecode SymbolID
	Symbols  []SymbolID
}

// DisjointPair is an unordered pair of distinct variables, stored
// canonically with the smaller SymbolID first so pairs can be compared and
// used as map keys directly.
type DisjointPair struct {
	Lo SymbolID
	Hi SymbolID
}

// NewDisjointPair canonicalizes a and b into a DisjointPair.
func NewDisjointPair(a, b SymbolID) DisjointPair {
	if a > b {
		a, b = b, a
	}
	return DisjointPair{Lo: a, Hi: b}
}

// AssertionKind distinguishes axioms ($a) from provables ($p).
type AssertionKind byte

const (
	// KindAxiom marks an assertion declared with $a.
	KindAxiom AssertionKind = iota
	// KindProvable marks an assertion declared with $p.
	KindProvable
)

// ProofToken is one step of an uncompressed proof: either a reference to a
// previously declared label (by spelling — resolution to a LabelID happens
// in the verify package, since an unresolvable label is a ProofError, not
// a ParseError), or the `?` placeholder marking an incomplete step.
type ProofToken struct {
	Unknown bool
	Label   string
}

// RawProof is the unprocessed token stream attached to a $p statement at
// parse time. Compressed-proof decoding (the A-Z/? letter run) happens in
// the verify package, once the assertion's MandatoryFrame is available.
type RawProof struct {
	Compressed bool

	// Uncompressed proof: tokens in source order.
	Tokens []ProofToken

	// Compressed proof: the parenthesized extra labels (L), by spelling,
	// and the whitespace-stripped run of [A-Z?] characters to decode.
	Extra []string
	Chars string
}

// Assertion is a frozen axiom or provable: its conclusion, the Scope
// snapshot active at its declaration, and the MandatoryFrame derived from
// that snapshot. Once added to a Database, an Assertion is never mutated.
type Assertion struct {
	Label      LabelID
	Kind       AssertionKind
	Typecode   SymbolID
	Conclusion []SymbolID
	Scope      Scope
	Frame      MandatoryFrame
	Proof      *RawProof // nil for axioms
}

// MandatoryFrame is the minimal set of hypotheses and disjoint restrictions
// required to state and apply an Assertion.
type MandatoryFrame struct {
	// Variables is the set of mandatory variables, sorted by SymbolID.
	Variables []SymbolID
	// Hypotheses is the ordered list of mandatory hypothesis labels: the
	// floating-hypothesis labels of the mandatory variables plus every
	// essential-hypothesis label of the scope, sorted by declaration
	// order (i.e. by LabelID, since labels are interned in declaration
	// order).
	Hypotheses []LabelID
	// Disjoints is the subset of the scope's disjoint pairs whose both
	// variables are mandatory.
	Disjoints []DisjointPair
}

// Package db implements the Metamath symbol table: interning of symbols
// and labels, scope tracking, and the frozen per-assertion state (active
// variables, hypotheses, disjoint pairs, and the derived mandatory frame)
// that the verify package replays proofs against.
//
// The package is the foundation of the module: it owns no parser and no
// verifier, only the small integer ids and value types both depend on.
package db

package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mm-verify/mm/db"
)

func TestAddConstantDuplicate(t *testing.T) {
	d := db.New()
	_, err := d.AddConstant("wff")
	require.NoError(t, err)
	_, err = d.AddConstant("wff")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already defined")
}

func TestAddVariableReactivation(t *testing.T) {
	d := db.New()
	outer := db.NewScope()
	_, err := d.AddConstant("wff")
	require.NoError(t, err)

	vid, err := d.AddVariable(outer, "x")
	require.NoError(t, err)

	_, err = d.FloatingStmt(outer, "xf", "wff", "x")
	require.NoError(t, err)

	inner := outer.Clone()
	delete(inner.Variables, vid) // simulate scope exit removing x's activation
	require.False(t, inner.IsActiveVariable(vid))

	// Re-enter x in a fresh scope: it should reactivate with its type
	// preserved, not error as a brand-new declaration.
	reactivated := db.NewScope()
	gotID, err := d.AddVariable(reactivated, "x")
	require.NoError(t, err)
	require.Equal(t, vid, gotID)

	// The preserved type still binds x: rebinding it to another type fails.
	_, err = d.AddConstant("set")
	require.NoError(t, err)
	_, err = d.FloatingStmt(reactivated, "xs", "set", "x")
	require.Error(t, err)
}

func TestAddVariableAlreadyActive(t *testing.T) {
	d := db.New()
	s := db.NewScope()
	_, err := d.AddVariable(s, "x")
	require.NoError(t, err)
	_, err = d.AddVariable(s, "x")
	require.Error(t, err)
}

func TestFloatingTypeConflict(t *testing.T) {
	d := db.New()
	s := db.NewScope()
	_, err := d.AddConstant("wff")
	require.NoError(t, err)
	_, err = d.AddConstant("set")
	require.NoError(t, err)
	_, err = d.AddVariable(s, "x")
	require.NoError(t, err)

	_, err = d.FloatingStmt(s, "xf", "wff", "x")
	require.NoError(t, err)

	_, err = d.FloatingStmt(s, "xf2", "set", "x")
	require.Error(t, err)
}

func TestEssentialRequiresFloating(t *testing.T) {
	d := db.New()
	s := db.NewScope()
	_, err := d.AddConstant("wff")
	require.NoError(t, err)
	_, err = d.AddVariable(s, "x")
	require.NoError(t, err)

	// x has no floating hypothesis yet.
	_, err = d.EssentialStmt(s, "xe", "wff", []string{"x"})
	require.Error(t, err)

	_, err = d.FloatingStmt(s, "xf", "wff", "x")
	require.NoError(t, err)

	// The failed declaration above already interned "xe", so use a fresh
	// label.
	_, err = d.EssentialStmt(s, "xe2", "wff", []string{"x"})
	require.NoError(t, err)
}

func TestDisjointStmtIdempotentAndDuplicate(t *testing.T) {
	d := db.New()
	s := db.NewScope()
	x, _ := d.AddVariable(s, "x")
	y, _ := d.AddVariable(s, "y")

	err := d.DisjointStmt(s, []string{"x", "y"})
	require.NoError(t, err)
	require.True(t, s.HasDisjoint(x, y))

	// Redeclaring the same pair is a no-op, per the idempotent-disjoint
	// Open Question decision in DESIGN.md.
	err = d.DisjointStmt(s, []string{"x", "y"})
	require.NoError(t, err)

	err = d.DisjointStmt(s, []string{"x", "x"})
	require.Error(t, err)

	err = d.DisjointStmt(s, []string{"x"})
	require.Error(t, err)
}

func TestMandatoryFrameOrderAndContents(t *testing.T) {
	d := db.New()
	s := db.NewScope()
	_, err := d.AddConstant("wff")
	require.NoError(t, err)
	_, err = d.AddVariable(s, "x")
	require.NoError(t, err)
	_, err = d.AddVariable(s, "y")
	require.NoError(t, err)

	xf, err := d.FloatingStmt(s, "xf", "wff", "x")
	require.NoError(t, err)
	yf, err := d.FloatingStmt(s, "yf", "wff", "y")
	require.NoError(t, err)

	err = d.DisjointStmt(s, []string{"x", "y"})
	require.NoError(t, err)

	xID, _ := d.LookupSymbol("x")
	wffID, _ := d.LookupSymbol("wff")

	a, err := d.AxiomStmt(s, "ax-x", "wff", []string{"x"})
	require.NoError(t, err)

	require.Equal(t, []db.SymbolID{xID}, a.Frame.Variables)
	require.Equal(t, []db.LabelID{xf.Label}, a.Frame.Hypotheses)
	require.Empty(t, a.Frame.Disjoints) // y isn't mandatory: not in conclusion
	require.Equal(t, wffID, a.Typecode)
	_ = yf
}

func TestScopeRoundTrip(t *testing.T) {
	d := db.New()
	outer := db.NewScope()
	_, err := d.AddVariable(outer, "x")
	require.NoError(t, err)
	before := len(outer.Variables)

	block := outer.Clone()
	_, err = d.AddVariable(block, "y")
	require.NoError(t, err)
	require.Equal(t, before+1, len(block.Variables))

	// Popping the block restores the saved outer scope untouched.
	require.Equal(t, before, len(outer.Variables))
	require.False(t, outer.IsActiveVariable(mustLookup(t, d, "y")))
}

func mustLookup(t *testing.T, d *db.Database, name string) db.SymbolID {
	t.Helper()
	id, ok := d.LookupSymbol(name)
	require.True(t, ok)
	return id
}

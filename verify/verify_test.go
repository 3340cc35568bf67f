package verify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mm-verify/mm/db"
	"github.com/mm-verify/mm/parse"
	"github.com/mm-verify/mm/verify"
)

func TestVerifyMinimalUncompressedProof(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		$v x $.
		xf $f wff x $.
		ax1 $a wff x $.
		p1 $p wff x $= xf ax1 $.
	`))
	require.NoError(t, err)

	result, err := verify.Verify(database)
	require.NoError(t, err)
	require.True(t, result.OK())
	require.Equal(t, 1, result.Verified)
}

func TestVerifyCompressedProofWithUnknownStepIsIncomplete(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff -> ( ) $.
		$v p q $.
		wp $f wff p $.
		wq $f wff q $.
		wi $a wff ( p -> q ) $.
		mp $p wff ( p -> q ) $= ( wp wq ) ACZ ? $.
	`))
	require.NoError(t, err)

	// wp and wq are both in M (|M|=2) and also listed redundantly as extra
	// labels, so 'A' (x=1) and 'C' (x=3, the first extra label) both
	// resolve cleanly; the trailing '?' marks the proof incomplete rather
	// than erroring or silently succeeding.
	result, err := verify.Verify(database)
	require.NoError(t, err)
	require.Equal(t, 1, result.Incomplete)
	require.Equal(t, verify.Incomplete, result.Provables[0].Outcome)
}

func TestVerifyUnrecognizedLabelIsProofError(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		$v x $.
		xf $f wff x $.
		p1 $p wff x $= bogus $.
	`))
	require.NoError(t, err)

	_, err = verify.Verify(database)
	require.Error(t, err)
	var pe *verify.ProofError
	require.ErrorAs(t, err, &pe)
}

func TestVerifyStackUnderflow(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff -> ( ) $.
		$v p q $.
		wp $f wff p $.
		wq $f wff q $.
		wi $a wff ( p -> q ) $.
		p1 $p wff ( p -> q ) $= wi $.
	`))
	require.NoError(t, err)

	_, err = verify.Verify(database)
	require.Error(t, err)
}

func TestVerifyDisjointViolation(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff -> ( ) $.
		$v x y a $.
		xf $f wff x $.
		yf $f wff y $.
		af $f wff a $.
		${
			$d x y $.
			th $a wff ( x -> y ) $.
		$}
		p1 $p wff ( a -> a ) $= af af th $.
	`))
	require.NoError(t, err)

	// th requires x and y disjoint, but the proof substitutes the same
	// variable a for both — a violation p1's own scope cannot satisfy
	// since (a, a) can never be a disjoint pair.
	_, err = verify.Verify(database)
	require.Error(t, err)
	var pe *verify.ProofError
	require.ErrorAs(t, err, &pe)
}

func TestVerifyAxiomNeedsNoProof(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		$v x $.
		xf $f wff x $.
		ax1 $a wff x $.
	`))
	require.NoError(t, err)

	result, err := verify.Verify(database)
	require.NoError(t, err)
	require.Equal(t, 0, result.Verified)
	require.Empty(t, result.Provables)
}

func TestVerifyWithOnStartTracesEachProvable(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		$v x $.
		xf $f wff x $.
		ax1 $a wff x $.
		p1 $p wff x $= xf ax1 $.
		p2 $p wff x $= xf ax1 $.
	`))
	require.NoError(t, err)

	var started []string
	_, err = verify.Verify(database, verify.WithOnStart(func(lbl db.LabelID) {
		started = append(started, database.LabelName(lbl))
	}))
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2"}, started)
}

func TestVerifyWithWorkersMatchesSequential(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		$v x $.
		xf $f wff x $.
		ax1 $a wff x $.
		p1 $p wff x $= xf ax1 $.
		p2 $p wff x $= xf ax1 $.
	`))
	require.NoError(t, err)

	result, err := verify.Verify(database, verify.WithWorkers(4))
	require.NoError(t, err)
	require.Equal(t, 2, result.Verified)

	sequential, err := verify.Verify(database)
	require.NoError(t, err)
	require.Equal(t, sequential, result)
}

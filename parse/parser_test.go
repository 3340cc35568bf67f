package parse_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mm-verify/mm/parse"
)

func TestParseConstantsAndVariables(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff |- $.
		$v p q $.
	`))
	require.NoError(t, err)
	_, ok := database.LookupSymbol("wff")
	require.True(t, ok)
	_, ok = database.LookupSymbol("p")
	require.True(t, ok)
}

func TestParseMinimalUncompressedProof(t *testing.T) {
	src := `
		$c wff |- -> ( ) $.
		$v p q $.
		wp $f wff p $.
		wq $f wff q $.
		wi $a wff ( p -> q ) $.
		id.1 $e wff p $.
		id $p wff p $= wp $.
	`
	database, err := parse.ParseBytes("t.mm", []byte(src))
	require.NoError(t, err)
	lbl, ok := database.LookupLabel("id")
	require.True(t, ok)
	a, ok := database.Assertion(lbl)
	require.True(t, ok)
	require.NotNil(t, a.Proof)
	require.False(t, a.Proof.Compressed)
	require.Len(t, a.Proof.Tokens, 1)
	require.Equal(t, "wp", a.Proof.Tokens[0].Label)
}

func TestParseCompressedProof(t *testing.T) {
	src := `
		$c wff |- -> ( ) $.
		$v p q $.
		wp $f wff p $.
		wq $f wff q $.
		wi $a wff ( p -> q ) $.
		id.1 $e wff p $.
		id $p wff p $= ( wp ) AB $.
	`
	database, err := parse.ParseBytes("t.mm", []byte(src))
	require.NoError(t, err)
	lbl, ok := database.LookupLabel("id")
	require.True(t, ok)
	a, ok := database.Assertion(lbl)
	require.True(t, ok)
	require.True(t, a.Proof.Compressed)
	require.Equal(t, []string{"wp"}, a.Proof.Extra)
	require.Equal(t, "AB", a.Proof.Chars)
}

func TestParseUnknownProofStep(t *testing.T) {
	src := `
		$c wff |- $.
		$v p $.
		wp $f wff p $.
		id $p wff p $= ? $.
	`
	database, err := parse.ParseBytes("t.mm", []byte(src))
	require.NoError(t, err)
	lbl, _ := database.LookupLabel("id")
	a, _ := database.Assertion(lbl)
	require.Len(t, a.Proof.Tokens, 1)
	require.True(t, a.Proof.Tokens[0].Unknown)
}

func TestParseDuplicateConstantAccumulatesError(t *testing.T) {
	_, err := parse.ParseBytes("t.mm", []byte(`
		$c wff wff $.
	`))
	require.Error(t, err)
}

func TestParseDisjointStatement(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		$v p q $.
		wp $f wff p $.
		wq $f wff q $.
		$d p q $.
	`))
	require.NoError(t, err)
	require.NotNil(t, database)
}

func TestCommentsValidNestedAndUnterminated(t *testing.T) {
	_, err := parse.ParseBytes("t.mm", []byte(`
		$( a valid comment $)
		$c wff $.
	`))
	require.NoError(t, err)

	_, err = parse.ParseBytes("t.mm", []byte(`$( outer $( inner $) $)`))
	require.Error(t, err)

	_, err = parse.ParseBytes("t.mm", []byte(`$( never closed`))
	require.Error(t, err)
}

func TestBlockScopingRestoresOuterScope(t *testing.T) {
	database, err := parse.ParseBytes("t.mm", []byte(`
		$c wff $.
		${
			$v p $.
			wp $f wff p $.
		$}
		$v p $.
	`))
	require.NoError(t, err)
	require.NotNil(t, database)
}

func TestUnmatchedCloseBraceIsFatal(t *testing.T) {
	_, err := parse.ParseBytes("t.mm", []byte(`$}`))
	require.Error(t, err)
}

func TestUnknownIntroducerIsFatal(t *testing.T) {
	_, err := parse.ParseBytes("t.mm", []byte(`$q foo $.`))
	require.Error(t, err)
}

func TestIncludeFile(t *testing.T) {
	dir := t.TempDir()
	included := filepath.Join(dir, "xyz.mm")
	require.NoError(t, os.WriteFile(included, []byte("$c wff $.\n"), 0o644))
	root := filepath.Join(dir, "root.mm")
	require.NoError(t, os.WriteFile(root, []byte("$[ xyz.mm $]\n$v p $.\n"), 0o644))

	database, err := parse.ParseFile(root)
	require.NoError(t, err)
	_, ok := database.LookupSymbol("wff")
	require.True(t, ok)
}

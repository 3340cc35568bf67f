package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mm-verify/mm/source"
)

func TestResolveIncludeOnce(t *testing.T) {
	dir := t.TempDir()
	included := filepath.Join(dir, "xyz.mm")
	require.NoError(t, os.WriteFile(included, []byte("$v x y z $.\n"), 0o644))

	l := source.NewLoader()
	content, idir, skip, err := l.Resolve(dir, "xyz.mm")
	require.NoError(t, err)
	require.False(t, skip)
	require.Equal(t, "$v x y z $.\n", string(content))
	require.Equal(t, dir, idir)

	// Second resolution of the same path is a no-op: empty content, skip
	// set, no error.
	content2, _, skip2, err := l.Resolve(dir, "xyz.mm")
	require.NoError(t, err)
	require.True(t, skip2)
	require.Empty(t, content2)
}

func TestReadRoot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "root.mm")
	require.NoError(t, os.WriteFile(root, []byte("$c a $.\n"), 0o644))

	l := source.NewLoader()
	content, idir, err := l.ReadRoot(root)
	require.NoError(t, err)
	require.Equal(t, "$c a $.\n", string(content))
	require.Equal(t, dir, idir)
}

func TestResolveMissingFile(t *testing.T) {
	dir := t.TempDir()
	l := source.NewLoader()
	_, _, _, err := l.Resolve(dir, "nope.mm")
	require.Error(t, err)
}

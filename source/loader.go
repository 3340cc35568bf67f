package source

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Loader resolves included file paths relative to the file that includes
// them and tracks which paths have already been served, so that including
// the same file twice (directly or through a cycle) yields its contents
// exactly once.
type Loader struct {
	seen map[string]bool
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{seen: make(map[string]bool)}
}

// ReadRoot reads and returns the contents of the root source file. The
// returned directory is the one subsequent Resolve calls should use for
// sibling includes.
func (l *Loader) ReadRoot(path string) (content []byte, dir string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "resolving %s", path)
	}
	content, err = l.read(abs)
	if err != nil {
		return nil, "", err
	}
	return content, filepath.Dir(abs), nil
}

// Resolve reads the file named path relative to dir (the directory of the
// including file). If path has already been resolved anywhere in this
// Loader's history, skip is true and content is nil: the include-once rule
// substitutes empty content rather than re-reading the file. The returned
// directory is the one nested includes inside this file should resolve
// against.
func (l *Loader) Resolve(dir, path string) (content []byte, dir2 string, skip bool, err error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, path)
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return nil, "", false, errors.Wrapf(err, "resolving %s", path)
	}
	if l.seen[abs] {
		return nil, filepath.Dir(abs), true, nil
	}
	content, err = l.read(abs)
	if err != nil {
		return nil, "", false, err
	}
	return content, filepath.Dir(abs), false, nil
}

func (l *Loader) read(abs string) ([]byte, error) {
	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", abs)
	}
	l.seen[abs] = true
	return b, nil
}

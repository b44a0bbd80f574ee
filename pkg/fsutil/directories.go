package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"

	stderrors "errors"

	"github.com/glorpus-work/buildcache/pkg/errors"
)

// EnsureDir creates path and any missing ancestors, parent before child.
// Multiple cache processes commonly race to create the same chain when the
// cache root does not yet exist, so a mkdir failing because the directory
// already exists is success. An existing entry that is not a directory fails
// with errors.ErrNotADirectory.
func EnsureDir(path string) error {
	var missing []string

	p := filepath.Clean(path)
	for {
		fi, err := os.Stat(p)
		if err == nil {
			if fi.IsDir() {
				break
			}
			return errors.Wrapf(errors.ErrNotADirectory, "%s", p)
		}
		parent := filepath.Dir(p)
		if parent == p {
			// Reached the filesystem root without finding an existing
			// directory; let mkdir report whatever is wrong.
			break
		}
		missing = append(missing, p)
		p = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		err := os.Mkdir(missing[i], DirModeDefault)
		if err != nil && !stderrors.Is(err, fs.ErrExist) {
			return errors.Wrapf(err, "failed to create directory %s", missing[i])
		}
	}
	return nil
}

// EnsureFileDir creates the parent directory of a file path if it doesn't
// exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

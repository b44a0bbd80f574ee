package fsutil

import (
	"os"

	"github.com/glorpus-work/buildcache/pkg/errors"
	"github.com/glorpus-work/buildcache/pkg/stat"
)

// Wipe removes everything at and below path. A missing path is a no-op.
// Entries removed by a concurrent process during the wipe are tolerated; any
// other removal failure aborts the wipe.
func Wipe(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if stat.IsNotFoundOrStale(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to lstat %s", path)
	}

	// Traverse reports children before their directory, so every directory is
	// empty by the time it is removed.
	return Traverse(path, func(p string, _ bool) error {
		if err := os.Remove(p); err != nil && !stat.IsNotFoundOrStale(err) {
			return errors.Wrapf(err, "failed to remove %s", p)
		}
		return nil
	})
}

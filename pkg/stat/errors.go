package stat

import (
	"errors"
	"io/fs"
)

// IsNotFoundOrStale reports whether err belongs to the error classes produced
// when another cache process removes an entry between our directory read and
// the operation on it: ENOENT, or ESTALE on NFS where the server has already
// reclaimed the file handle. Callers treat these as tolerated races, never as
// failures.
func IsNotFoundOrStale(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrNotExist) || isStale(err)
}

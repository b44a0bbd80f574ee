package fsutil

import (
	"os"

	"github.com/glorpus-work/buildcache/internal/logger"
	"github.com/glorpus-work/buildcache/pkg/errors"
	"github.com/glorpus-work/buildcache/pkg/stat"
)

// LogPolicy controls which removal outcomes are logged. It never affects the
// returned error.
type LogPolicy int

const (
	// LogFailure logs the removal and, when it fails, the failure.
	LogFailure LogPolicy = iota
	// IgnoreFailure logs successful removals only.
	IgnoreFailure
)

// TempRemoveSuffix is appended to a path to form the sibling name a file is
// renamed to before the final unlink.
const TempRemoveSuffix = ".buildcache.rm.tmp"

// SafeUnlink removes path so that concurrent processes on networked
// filesystems never observe a half-removed file: the path is first renamed to
// a deterministic sibling temp name, then the temp name is unlinked. The temp
// file is expendable, so a concurrent process unlinking it first is treated
// as success.
func SafeUnlink(path string, policy LogPolicy) error {
	tmpName := path + TempRemoveSuffix

	var opErr error
	if err := os.Rename(path, tmpName); err != nil {
		opErr = err
	} else if err := os.Remove(tmpName); err != nil && !stat.IsNotFoundOrStale(err) {
		opErr = err
	}

	if opErr == nil || policy == LogFailure {
		logger.Debugf("unlink %s via %s", path, tmpName)
		if opErr != nil {
			logger.Debugf("unlink failed: %v", opErr)
		}
	}
	return errors.Wrapf(opErr, "failed to remove %s", path)
}

// TempUnlink removes a file that the caller owns exclusively, such as a
// scratch file, with a direct unlink. A file already gone is success.
func TempUnlink(path string, policy LogPolicy) error {
	var opErr error
	if err := os.Remove(path); err != nil && !stat.IsNotFoundOrStale(err) {
		opErr = err
	}

	if opErr == nil || policy == LogFailure {
		logger.Debugf("unlink %s", path)
		if opErr != nil {
			logger.Debugf("unlink failed: %v", opErr)
		}
	}
	return errors.Wrapf(opErr, "failed to remove %s", path)
}

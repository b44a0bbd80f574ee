package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/glorpus-work/buildcache/internal/logger"
	"github.com/glorpus-work/buildcache/pkg/errors"
)

// MaterializeOptions selects which materialization strategies are attempted
// before falling back to a byte copy.
type MaterializeOptions struct {
	// FileClone attempts a copy-on-write clone. Only supported on Linux
	// filesystems that implement FICLONE (btrfs, xfs with reflink).
	FileClone bool
	// HardLink attempts to hard-link the source into place.
	HardLink bool
}

// Materialize produces dest with the contents of source, preferring the
// cheapest enabled strategy: clone, then hard link, then byte copy. A
// hard-linked destination is made read-only because its inode may now back
// several cache entries. With viaTmp the copy fallback writes to a sibling
// temp file and renames it into place so concurrent readers never observe a
// partially written artifact.
func Materialize(source, dest string, viaTmp bool, opts MaterializeOptions) error {
	if source == "" || dest == "" {
		return errors.ErrEmptyPaths
	}

	if opts.FileClone {
		logger.Debugf("cloning %s to %s", source, dest)
		if err := cloneFile(source, dest, viaTmp); err == nil {
			return nil
		} else {
			logger.Debugf("failed to clone: %v", err)
		}
	}

	if opts.HardLink {
		_ = os.Remove(dest)
		logger.Debugf("hard linking %s to %s", source, dest)
		if err := os.Link(source, dest); err == nil {
			if err := os.Chmod(dest, FileModeReadOnly); err != nil {
				logger.Debugf("failed to chmod %s: %v", dest, err)
			}
			return nil
		} else {
			logger.Debugf("failed to hard link: %v", err)
		}
	}

	logger.Debugf("copying %s to %s", source, dest)
	return CopyFile(source, dest, viaTmp)
}

// CopyFile copies source to dest byte for byte. With viaTmp the data is
// written to a sibling temp file first and renamed into place.
func CopyFile(source, dest string, viaTmp bool) error {
	src, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, "failed to open source file %s", source)
	}
	defer func() { _ = src.Close() }()

	if !viaTmp {
		dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileModeDefault)
		if err != nil {
			return errors.Wrapf(err, "failed to create destination file %s", dest)
		}
		if _, err := io.Copy(dst, src); err != nil {
			_ = dst.Close()
			return errors.Wrapf(err, "failed to copy %s to %s", source, dest)
		}
		return errors.Wrapf(dst.Close(), "failed to close %s", dest)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp.*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file next to %s", dest)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = TempUnlink(tmp.Name(), IgnoreFailure)
		return errors.Wrapf(err, "failed to copy %s to %s", source, tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		_ = TempUnlink(tmp.Name(), IgnoreFailure)
		return errors.Wrapf(err, "failed to close %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), FileModeDefault); err != nil {
		_ = TempUnlink(tmp.Name(), IgnoreFailure)
		return errors.Wrapf(err, "failed to chmod %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = TempUnlink(tmp.Name(), IgnoreFailure)
		return errors.Wrapf(err, "failed to rename %s to %s", tmp.Name(), dest)
	}
	return nil
}

//go:build linux

package fsutil

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// cloneFile duplicates source to dest with a copy-on-write FICLONE ioctl. The
// clone shares storage with the source until either copy is modified.
func cloneFile(source, dest string, viaTmp bool) error {
	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if !viaTmp {
		dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileModeDefault)
		if err != nil {
			return err
		}
		if err := unix.IoctlFileClone(int(dst.Fd()), int(src.Fd())); err != nil {
			_ = dst.Close()
			return err
		}
		return dst.Close()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp.*")
	if err != nil {
		return err
	}
	if err := unix.IoctlFileClone(int(tmp.Fd()), int(src.Fd())); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

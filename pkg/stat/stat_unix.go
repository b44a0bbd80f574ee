//go:build unix

package stat

import (
	"errors"
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix"
)

func fileID(fi fs.FileInfo) FileID {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		//nolint:unconvert // Dev is int32 on some platforms.
		return FileID{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}
	}
	return FileID{}
}

func isStale(err error) bool {
	return errors.Is(err, unix.ESTALE)
}

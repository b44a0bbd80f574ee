package stat

import (
	"io/fs"
	"os"
)

// FileID identifies a file by device and inode. Two paths with equal non-zero
// FileIDs refer to the same underlying file.
type FileID struct {
	Dev uint64
	Ino uint64
}

// Info describes a single filesystem entry.
type Info struct {
	Path string
	Size int64
	Mode fs.FileMode
	ID   FileID
}

// IsDir reports whether the entry is a directory.
func (i Info) IsDir() bool {
	return i.Mode.IsDir()
}

// IsSymlink reports whether the entry is a symbolic link. Only meaningful for
// results of Lstat.
func (i Info) IsSymlink() bool {
	return i.Mode&fs.ModeSymlink != 0
}

// SameFileAs reports whether both entries refer to the same underlying file.
func (i Info) SameFileAs(other Info) bool {
	return i.ID == other.ID
}

// OS implements System using the local filesystem.
type OS struct{}

// Stat follows symlinks.
func (OS) Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return newInfo(path, fi), nil
}

// Lstat does not follow symlinks.
func (OS) Lstat(path string) (Info, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return Info{}, err
	}
	return newInfo(path, fi), nil
}

func newInfo(path string, fi fs.FileInfo) Info {
	return Info{
		Path: path,
		Size: fi.Size(),
		Mode: fi.Mode(),
		ID:   fileID(fi),
	}
}

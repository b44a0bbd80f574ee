//go:build !unix

package stat

import "io/fs"

func fileID(fi fs.FileInfo) FileID {
	return FileID{}
}

func isStale(error) bool {
	return false
}

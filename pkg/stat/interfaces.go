//go:generate mockgen -destination=./mocks/stat.go . System

// Package stat provides a thin abstraction over os.Stat/os.Lstat that exposes
// the file identity (device and inode pair) needed to prove that two paths
// denote the same underlying file, plus classification helpers for the error
// classes produced by concurrent cache processes racing on the same paths.
package stat

// System abstracts stat calls so path logic can be tested without touching a
// real filesystem.
type System interface {
	// Stat follows symlinks.
	Stat(path string) (Info, error)
	// Lstat does not follow symlinks.
	Lstat(path string) (Info, error)
}

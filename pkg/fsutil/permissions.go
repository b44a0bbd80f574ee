// Package fsutil provides the filesystem primitives of the cache: race-safe
// removal, recursive traversal and wiping, directory creation tolerant of
// concurrent creators, and artifact materialization via clone, hard link or
// copy.
package fsutil

// File and directory permission constants.
const (
	// File mode masks.
	FileModeMask = 0o777 // Full permission mask for files
	DirModeMask  = 0o777 // Full permission mask for directories

	// Default file modes.
	FileModeDefault  = 0o644 // -rw-r--r--
	FileModeReadOnly = 0o444 // -r--r--r--: for hard-linked cache artifacts
	FileModeExec     = 0o755 // -rwxr-xr-x

	// Default directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x
	DirModeSecure  = 0o750 // drwxr-x---
	DirModePrivate = 0o700 // drwx------

	// Special file modes.
	Umask = 0o022 // Default umask value
)

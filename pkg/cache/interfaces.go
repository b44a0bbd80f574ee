package cache

import "github.com/glorpus-work/buildcache/pkg/shard"

// Manager defines the interface for cache tree operations.
type Manager interface {
	Open() error
	EntryPath(key, suffix string) string
	Put(key, suffix, source string) (string, error)
	Get(key, suffix, dest string) (bool, error)
	Remove(key, suffix string) error
	GetInfo(progress shard.Progress) (*Info, error)
	Clean(progress shard.Progress) (*CleanResult, error)
	GetDirectory() string
}

// Info represents cache information.
type Info struct {
	Directory string
	Levels    int
	Files     int
	TotalSize int64
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	FilesRemoved int
}

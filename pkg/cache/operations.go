package cache

import (
	"fmt"

	"github.com/glorpus-work/buildcache/internal/logger"
	"github.com/glorpus-work/buildcache/pkg/shard"
)

// Operation wraps a Manager with human-readable messages for CLI output.
type Operation struct {
	manager Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager Manager) *Operation {
	return &Operation{
		manager: manager,
	}
}

// Clean removes all entries from the cache and reports what was freed.
func (op *Operation) Clean(progress shard.Progress) (string, error) {
	logger.Debug("Cleaning cache", logger.Fields{
		"directory": op.manager.GetDirectory(),
	})

	result, err := op.manager.Clean(progress)
	if err != nil {
		return "", fmt.Errorf("failed to clean cache: %w", err)
	}

	if result.FilesRemoved == 0 {
		return "No files were removed from the cache.", nil
	}
	return fmt.Sprintf("Successfully cleaned cache. Removed %d files, freed %s of disk space.",
		result.FilesRemoved, formatBytes(result.TotalFreed)), nil
}

// GetInfo returns a summary of the cache contents.
func (op *Operation) GetInfo(progress shard.Progress) (string, error) {
	info, err := op.manager.GetInfo(progress)
	if err != nil {
		return "", fmt.Errorf("failed to get cache info: %w", err)
	}

	return fmt.Sprintf(`Cache Information:
  Directory:  %s
  Levels:     %d
  Files:      %d
  Total Size: %s`,
		info.Directory,
		info.Levels,
		info.Files,
		formatBytes(info.TotalSize),
	), nil
}

// GetDirectory returns the cache directory path.
func (op *Operation) GetDirectory() string {
	return op.manager.GetDirectory()
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}

package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")

	// Cache errors.
	ErrCacheDirectory      = fmt.Errorf("cache directory cannot be empty")
	ErrInvalidCacheLevels  = fmt.Errorf("cache levels must be between 1 and 8")
	ErrVersionIncompatible = fmt.Errorf("incompatible cache format version")
	ErrEmptyPaths          = fmt.Errorf("source and destination paths cannot be empty")

	// Filesystem errors.
	ErrNotADirectory = fmt.Errorf("not a directory")
	ErrUnsupported   = fmt.Errorf("operation not supported on this platform")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

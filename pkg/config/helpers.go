package config

import (
	"fmt"
	"strconv"
)

// SetValue sets a configuration value by key.
// Supported keys:
//   - cache_dir: string - Path to the cache root directory
//   - cache_levels: int - Shard fan-out depth (1-8)
//   - base_dir: string - Base directory for relative cache keys
//   - file_clone: bool - Enable copy-on-write cloning
//   - hard_link: bool - Enable hard-linking
//   - log_level: string - Logging level (debug, info, warn, error)
//   - output_format: string - Output format (text, json)
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "cache_dir":
		c.Cache.Dir = value
	case "cache_levels":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.Cache.Levels = intVal
	case "base_dir":
		c.Cache.BaseDir = value
	case "file_clone":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Cache.FileClone = boolVal
	case "hard_link":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Cache.HardLink = boolVal
	case "log_level":
		c.Settings.LogLevel = value
	case "output_format":
		c.Settings.OutputFormat = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns a configuration value by key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "cache_dir":
		return c.Cache.Dir, nil
	case "cache_levels":
		return strconv.Itoa(c.Cache.Levels), nil
	case "base_dir":
		return c.Cache.BaseDir, nil
	case "file_clone":
		return strconv.FormatBool(c.Cache.FileClone), nil
	case "hard_link":
		return strconv.FormatBool(c.Cache.HardLink), nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

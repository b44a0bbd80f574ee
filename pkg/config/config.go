// Package config provides configuration management for the build cache. It
// handles loading, validating and saving the YAML configuration that supplies
// the cache root, the shard fan-out depth, the base directory for relative
// cache keys and the materialization feature flags.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/buildcache/pkg/errors"
	"github.com/glorpus-work/buildcache/pkg/fsutil"
	"github.com/glorpus-work/buildcache/pkg/shard"
	"gopkg.in/yaml.v3"
)

// AppName is the name of the application used in paths.
const AppName = "buildcache"

// Config represents the application configuration.
type Config struct {
	Cache    CacheSettings `yaml:"cache"`
	Settings Settings      `yaml:"settings"`
}

// CacheSettings configures the on-disk cache tree.
type CacheSettings struct {
	// Dir is the cache root directory.
	Dir string `yaml:"dir,omitempty"`

	// Levels is the number of single-hex-character fan-out levels under the
	// root. Must be between 1 and 8.
	Levels int `yaml:"levels"`

	// BaseDir, when non-empty, is the directory under which absolute paths
	// are rewritten to relative form so cache keys remain valid across
	// relocated build trees. Must be an absolute path.
	BaseDir string `yaml:"base_dir,omitempty"`

	// FileClone enables copy-on-write cloning when materializing artifacts.
	FileClone bool `yaml:"file_clone"`

	// HardLink enables hard-linking when materializing artifacts.
	HardLink bool `yaml:"hard_link"`
}

// Settings represents general application settings.
type Settings struct {
	LogLevel     string `yaml:"log_level"`     // debug, info, warn, error
	OutputFormat string `yaml:"output_format"` // text, json
}

// Default configuration values.
const (
	// DefaultCacheLevels is the default shard fan-out depth.
	DefaultCacheLevels = 2

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheSettings{
			Dir:    defaultCacheDir(),
			Levels: DefaultCacheLevels,
		},
		Settings: Settings{
			LogLevel:     "info",
			OutputFormat: "text",
		},
	}
}

func defaultCacheDir() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(cacheDir, AppName)
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Cache.Dir == "" {
		c.Cache.Dir = defaultCacheDir()
	}
	if c.Cache.Levels == 0 {
		c.Cache.Levels = DefaultCacheLevels
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = "text"
	}
}

// SaveConfig saves configuration to a file, atomically replacing an existing
// one.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrapf(err, "failed to create config file %s", tempPath)
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrapf(err, "failed to rename temporary config file %s", tempPath)
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.Cache.Dir == "" {
		return errors.ErrCacheDirectory
	}
	if c.Cache.Levels < shard.MinLevels || c.Cache.Levels > shard.MaxLevels {
		return fmt.Errorf("%w: got %d", errors.ErrInvalidCacheLevels, c.Cache.Levels)
	}
	if c.Cache.BaseDir != "" && !filepath.IsAbs(c.Cache.BaseDir) {
		return fmt.Errorf("base_dir must be an absolute path, got %q", c.Cache.BaseDir)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Settings.LogLevel)] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Settings.LogLevel)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Settings.OutputFormat] {
		return fmt.Errorf("invalid output format %q, must be one of: text, json", c.Settings.OutputFormat)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, AppName, "config.yaml"), nil
}

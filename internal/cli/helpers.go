package cli

import (
	"fmt"

	"github.com/glorpus-work/buildcache/internal/logger"
	"github.com/glorpus-work/buildcache/pkg/cache"
	"github.com/glorpus-work/buildcache/pkg/config"
	"github.com/glorpus-work/buildcache/pkg/fsutil"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2

// loadConfig loads the configuration from the --config flag or the default
// location and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	initLoggerFromConfig(cfg)
	return cfg, nil
}

func initLoggerFromConfig(cfg *config.Config) {
	format := logger.FormatText
	if cfg.Settings.OutputFormat == "json" {
		format = logger.FormatJSON
	}
	logger.InitLogger(cfg.Settings.LogLevel, format)
}

// openCacheManager builds a cache manager from the configuration and opens
// the cache root.
func openCacheManager(cfg *config.Config) (*cache.DefaultManager, error) {
	manager := cache.NewManager(cfg.Cache.Dir, cfg.Cache.Levels, fsutil.MaterializeOptions{
		FileClone: cfg.Cache.FileClone,
		HardLink:  cfg.Cache.HardLink,
	})
	if err := manager.Open(); err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", cfg.Cache.Dir, err)
	}
	return manager, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// Falling back to an empty path yields a descriptive error when the
		// config file is actually read or written.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/buildcache/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Cache.Dir)
	assert.Equal(t, DefaultCacheLevels, cfg.Cache.Levels)
	assert.Empty(t, cfg.Cache.BaseDir)
	assert.False(t, cfg.Cache.FileClone)
	assert.False(t, cfg.Cache.HardLink)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, "text", cfg.Settings.OutputFormat)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReader(t *testing.T) {
	yamlData := `
cache:
  dir: /var/cache/buildcache
  levels: 3
  base_dir: /home/user/project
  hard_link: true
settings:
  log_level: debug
  output_format: json
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yamlData))
	require.NoError(t, err)

	assert.Equal(t, "/var/cache/buildcache", cfg.Cache.Dir)
	assert.Equal(t, 3, cfg.Cache.Levels)
	assert.Equal(t, "/home/user/project", cfg.Cache.BaseDir)
	assert.True(t, cfg.Cache.HardLink)
	assert.False(t, cfg.Cache.FileClone)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "json", cfg.Settings.OutputFormat)
}

func TestLoadConfigFromReaderAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("cache:\n  hard_link: true\n"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Cache.Dir)
	assert.Equal(t, DefaultCacheLevels, cfg.Cache.Levels)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.True(t, cfg.Cache.HardLink)
}

func TestLoadConfigFromReaderInvalidYAML(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("cache: ["))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}, wantErr: false},
		{name: "levels too low", mutate: func(c *Config) { c.Cache.Levels = 0 }, wantErr: true},
		{name: "levels too high", mutate: func(c *Config) { c.Cache.Levels = 9 }, wantErr: true},
		{name: "empty cache dir", mutate: func(c *Config) { c.Cache.Dir = "" }, wantErr: true},
		{name: "relative base dir", mutate: func(c *Config) { c.Cache.BaseDir = "rel/path" }, wantErr: true},
		{name: "absolute base dir", mutate: func(c *Config) { c.Cache.BaseDir = "/abs/path" }, wantErr: false},
		{name: "bad log level", mutate: func(c *Config) { c.Settings.LogLevel = "loud" }, wantErr: true},
		{name: "bad output format", mutate: func(c *Config) { c.Settings.OutputFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Cache.Levels = 4
	cfg.Cache.BaseDir = "/work/tree"
	require.NoError(t, cfg.SaveConfig(path))

	// No temp file left next to the config.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetAndGetValue(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{key: "cache_dir", value: "/tmp/cache"},
		{key: "cache_levels", value: "3"},
		{key: "base_dir", value: "/work"},
		{key: "file_clone", value: "true"},
		{key: "hard_link", value: "true"},
		{key: "log_level", value: "debug"},
		{key: "output_format", value: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.SetValue(tt.key, tt.value))
			got, err := cfg.GetValue(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSetValueErrors(t *testing.T) {
	cfg := DefaultConfig()

	assert.Error(t, cfg.SetValue("unknown_key", "x"))
	assert.Error(t, cfg.SetValue("cache_levels", "many"))
	assert.Error(t, cfg.SetValue("hard_link", "maybe"))

	_, err := cfg.GetValue("unknown_key")
	assert.Error(t, err)
}

func TestToYAML(t *testing.T) {
	cfg := DefaultConfig()
	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "levels: 2")
}

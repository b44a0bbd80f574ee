//go:build integration

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, tempDir string) (cfgPath, cacheDir string) {
	t.Helper()

	cfgPath = filepath.Join(tempDir, "config.yaml")
	cacheDir = filepath.Join(tempDir, "cache")

	yamlContent := `cache:
  dir: ` + cacheDir + `
  levels: 2
settings:
  log_level: error
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yamlContent), 0o600))
	return cfgPath, cacheDir
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	cmd := newRootCmd()
	cmd.SetArgs(args)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := cmd.ExecuteContext(context.Background())

	_ = w.Close()
	os.Stdout = oldStdout

	var buf strings.Builder
	_, _ = io.Copy(&buf, r)

	require.NoError(t, err)
	return buf.String()
}

func TestCache_PutGetRemove(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath, cacheDir := writeTestConfig(t, tempDir)

	source := filepath.Join(tempDir, "artifact.o")
	require.NoError(t, os.WriteFile(source, []byte("object code"), 0o644))

	runCommand(t, "--config", cfgPath, "put", "cdef0123", source, "--suffix", ".o")

	// The entry lives at the sharded path.
	output := runCommand(t, "--config", cfgPath, "path", "cdef0123", "--suffix", ".o")
	entryPath := strings.TrimSpace(output)
	assert.Equal(t, filepath.Join(cacheDir, "c", "d", "ef0123.o"), entryPath)
	assert.FileExists(t, entryPath)

	dest := filepath.Join(tempDir, "restored.o")
	runCommand(t, "--config", cfgPath, "get", "cdef0123", dest, "--suffix", ".o")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "object code", string(data))

	runCommand(t, "--config", cfgPath, "rm", "cdef0123", "--suffix", ".o")
	assert.NoFileExists(t, entryPath)
}

func TestCache_InfoAndClean(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath, cacheDir := writeTestConfig(t, tempDir)

	source := filepath.Join(tempDir, "artifact.o")
	require.NoError(t, os.WriteFile(source, []byte("object code"), 0o644))
	runCommand(t, "--config", cfgPath, "put", "cdef0123", source, "--suffix", ".o")

	output := runCommand(t, "--config", cfgPath, "cache", "info")
	assert.Contains(t, output, "Cache Information:")
	assert.Contains(t, output, cacheDir)
	assert.Contains(t, output, "Files:      1")

	output = runCommand(t, "--config", cfgPath, "cache", "clean")
	assert.Contains(t, output, "Removed 1 files")

	output = runCommand(t, "--config", cfgPath, "cache", "dir")
	assert.Contains(t, output, cacheDir)
}

func TestCache_ExportImport(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath, _ := writeTestConfig(t, tempDir)

	source := filepath.Join(tempDir, "artifact.o")
	require.NoError(t, os.WriteFile(source, []byte("object code"), 0o644))
	runCommand(t, "--config", cfgPath, "put", "cdef0123", source, "--suffix", ".o")

	archivePath := filepath.Join(tempDir, "snapshot.tar.gz")
	runCommand(t, "--config", cfgPath, "export", archivePath)
	assert.FileExists(t, archivePath)

	// Import into a fresh cache configured in a second config file.
	otherDir := t.TempDir()
	otherCfg, otherCache := writeTestConfig(t, otherDir)
	runCommand(t, "--config", otherCfg, "import", archivePath)

	assert.FileExists(t, filepath.Join(otherCache, "c", "d", "ef0123.o"))
}

func TestCache_ConfigRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	cfgPath, _ := writeTestConfig(t, tempDir)

	runCommand(t, "--config", cfgPath, "config", "set", "cache_levels", "3")

	output := runCommand(t, "--config", cfgPath, "config", "get", "cache_levels")
	assert.Equal(t, "3", strings.TrimSpace(output))

	output = runCommand(t, "--config", cfgPath, "config", "show")
	assert.Contains(t, output, "cache_levels")
	assert.Contains(t, output, "log_level")
}

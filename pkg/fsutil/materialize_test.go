package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCopyFileDirect(t *testing.T) {
	source := writeSource(t, "payload")
	dest := filepath.Join(t.TempDir(), "dest")

	require.NoError(t, CopyFile(source, dest, false))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestCopyFileViaTmp(t *testing.T) {
	source := writeSource(t, "payload")
	destDir := t.TempDir()
	dest := filepath.Join(destDir, "dest")

	require.NoError(t, CopyFile(source, dest, true))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// No temp file left behind.
	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "dest", entries[0].Name())
}

func TestCopyFileViaTmpOverwritesReadOnly(t *testing.T) {
	source := writeSource(t, "new")
	dest := filepath.Join(t.TempDir(), "dest")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o444))

	require.NoError(t, CopyFile(source, dest, true))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCopyFileMissingSource(t *testing.T) {
	err := CopyFile(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "dest"), true)
	assert.Error(t, err)
}

func TestMaterializeEmptyPaths(t *testing.T) {
	err := Materialize("", "/tmp/x", true, MaterializeOptions{})
	assert.Error(t, err)
	err = Materialize("/tmp/x", "", true, MaterializeOptions{})
	assert.Error(t, err)
}

func TestMaterializeCopyFallback(t *testing.T) {
	source := writeSource(t, "payload")
	dest := filepath.Join(t.TempDir(), "dest")

	require.NoError(t, Materialize(source, dest, true, MaterializeOptions{}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMaterializeHardLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hard link semantics differ on windows")
	}

	dir := t.TempDir()
	source := filepath.Join(dir, "source")
	require.NoError(t, os.WriteFile(source, []byte("payload"), 0o644))
	dest := filepath.Join(dir, "dest")

	require.NoError(t, Materialize(source, dest, true, MaterializeOptions{HardLink: true}))

	srcInfo, err := os.Stat(source)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, os.SameFile(srcInfo, dstInfo))
	assert.Equal(t, os.FileMode(FileModeReadOnly), dstInfo.Mode().Perm())
}

func TestMaterializeHardLinkAcrossDevicesFallsBack(t *testing.T) {
	// Hard linking into a different temp dir may or may not cross a device
	// boundary; either way the result must carry the right content.
	source := writeSource(t, "payload")
	dest := filepath.Join(t.TempDir(), "dest")

	require.NoError(t, Materialize(source, dest, true, MaterializeOptions{HardLink: true}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMaterializeCloneFallsBackToCopy(t *testing.T) {
	// FICLONE is unsupported on most test filesystems; the chain must land
	// on the byte copy.
	source := writeSource(t, "payload")
	dest := filepath.Join(t.TempDir(), "dest")

	require.NoError(t, Materialize(source, dest, true, MaterializeOptions{FileClone: true}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

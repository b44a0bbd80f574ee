package stat_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/glorpus-work/buildcache/pkg/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.o")
	require.NoError(t, os.WriteFile(path, []byte("object code"), 0o644))

	sys := stat.OS{}
	info, err := sys.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(len("object code")), info.Size)
	assert.False(t, info.IsDir())
	assert.False(t, info.IsSymlink())
}

func TestStatDirectory(t *testing.T) {
	sys := stat.OS{}
	info, err := sys.Stat(t.TempDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStatMissingFile(t *testing.T) {
	sys := stat.OS{}
	_, err := sys.Stat(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, stat.IsNotFoundOrStale(err))
}

func TestLstatSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("data"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	sys := stat.OS{}

	linfo, err := sys.Lstat(link)
	require.NoError(t, err)
	assert.True(t, linfo.IsSymlink())

	// Stat follows the link and reports the target's identity.
	sinfo, err := sys.Stat(link)
	require.NoError(t, err)
	assert.False(t, sinfo.IsSymlink())

	tinfo, err := sys.Stat(target)
	require.NoError(t, err)
	assert.True(t, sinfo.SameFileAs(tinfo))
}

func TestSameFileAsHardLink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hard links are unreliable on Windows CI")
	}

	dir := t.TempDir()
	original := filepath.Join(dir, "original")
	alias := filepath.Join(dir, "alias")
	other := filepath.Join(dir, "other")
	require.NoError(t, os.WriteFile(original, []byte("data"), 0o644))
	require.NoError(t, os.Link(original, alias))
	require.NoError(t, os.WriteFile(other, []byte("data"), 0o644))

	sys := stat.OS{}
	a, err := sys.Stat(original)
	require.NoError(t, err)
	b, err := sys.Stat(alias)
	require.NoError(t, err)
	c, err := sys.Stat(other)
	require.NoError(t, err)

	assert.True(t, a.SameFileAs(b))
	assert.False(t, a.SameFileAs(c))
}

func TestIsNotFoundOrStale(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "not exist",
			err:      os.ErrNotExist,
			expected: true,
		},
		{
			name:     "permission denied",
			err:      os.ErrPermission,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stat.IsNotFoundOrStale(tt.err))
		})
	}
}

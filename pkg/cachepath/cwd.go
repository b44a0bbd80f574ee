package cachepath

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/buildcache/pkg/stat"
)

// ActualCwd returns the OS-reported working directory with separators
// normalized to forward slashes, or "" if it cannot be determined.
func ActualCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.ToSlash(cwd)
}

// ApparentCwd returns the working directory the invoking shell reports via
// $PWD, provided it denotes the same file as actual. A user who set up a
// symlinked working directory on purpose expects cache keys to be computed
// against that alias, not against the dereferenced path the OS reports. The
// normalized form of $PWD is preferred when it still resolves to the same
// identity.
func ApparentCwd(sys stat.System, actual string) string {
	pwd := os.Getenv("PWD")
	if pwd == "" {
		return actual
	}

	pwdStat, err := sys.Stat(pwd)
	if err != nil {
		return actual
	}
	cwdStat, err := sys.Stat(actual)
	if err != nil || !pwdStat.SameFileAs(cwdStat) {
		return actual
	}

	normalized := NormalizeAbsolute(pwd)
	if normalized == pwd {
		return normalized
	}
	if ni, err := sys.Stat(normalized); err == nil && ni.SameFileAs(pwdStat) {
		return normalized
	}
	return pwd
}

package cachepath

import (
	"strings"

	"github.com/glorpus-work/buildcache/pkg/stat"
)

// Relativizer rewrites absolute paths under a configured base directory into
// relative form so that cache keys stay valid across build trees that are
// relocated but structurally identical.
type Relativizer struct {
	sys         stat.System
	baseDir     string
	actualCwd   string
	apparentCwd string
}

// NewRelativizer returns a Relativizer for the given base directory and
// working directories. An empty baseDir disables rewriting.
func NewRelativizer(sys stat.System, baseDir, actualCwd, apparentCwd string) *Relativizer {
	return &Relativizer{
		sys:         sys,
		baseDir:     baseDir,
		actualCwd:   actualCwd,
		apparentCwd: apparentCwd,
	}
}

// MakeRelative returns path rewritten relative to the working directory, or
// path unchanged when no base directory is configured, the path lies outside
// it, or no relative candidate reproduces the identity of the original file.
func (r *Relativizer) MakeRelative(path string) string {
	if r.baseDir == "" || !strings.HasPrefix(path, r.baseDir) {
		return path
	}

	// Identity checks need a path that exists on disk. Ascend to the first
	// existing ancestor and reattach the remembered suffix afterwards.
	originalPath := path
	var pathStat stat.Info
	for {
		st, err := r.sys.Stat(path)
		if err == nil {
			pathStat = st
			break
		}
		parent := DirName(path)
		if parent == path {
			return originalPath
		}
		path = parent
	}
	suffix := originalPath[len(path):]

	normalized := NormalizeAbsolute(path)
	candidates := []string{
		RelativePath(r.actualCwd, normalized),
		RelativePath(r.apparentCwd, normalized),
	}
	// Shortest candidate first; on a tie the actual-cwd candidate stays in
	// front and wins.
	if len(candidates[0]) > len(candidates[1]) {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, relpath := range candidates {
		if st, err := r.sys.Stat(relpath); err == nil && st.SameFileAs(pathStat) {
			return relpath + suffix
		}
	}

	// No candidate resolves back to the same file.
	return originalPath
}

package shard

import (
	"os"
	"strings"

	"github.com/glorpus-work/buildcache/pkg/cachepath"
	"github.com/glorpus-work/buildcache/pkg/errors"
	"github.com/glorpus-work/buildcache/pkg/fsutil"
	"github.com/glorpus-work/buildcache/pkg/stat"
)

const (
	// CacheDirTagName marks the cache root per the Cache Directory Tagging
	// Specification so backup tools can skip it.
	CacheDirTagName = "CACHEDIR.TAG"

	// StatsFileName is the per-shard statistics file.
	StatsFileName = "stats"

	// NFSTempPrefix is the prefix NFS clients give silly-renamed files that
	// are still open on another host.
	NFSTempPrefix = ".nfs"
)

// TopLevelFiles returns the path of every file under dir in visit order,
// excluding the cache metadata tag file, the statistics file and NFS temp
// files. A missing dir yields an empty result and no error. Progress is
// reported as the fraction of second-level directories seen, independent of
// deeper recursion, with a final call of 1.0.
func TopLevelFiles(dir string, progress Progress) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if stat.IsNotFoundOrStale(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to stat %s", dir)
	}

	var files []string
	level2Dirs := 0

	err := fsutil.Traverse(dir, func(path string, isDir bool) error {
		name := cachepath.BaseName(path)
		if name == CacheDirTagName || name == StatsFileName || strings.HasPrefix(name, NFSTempPrefix) {
			return nil
		}

		if !isDir {
			files = append(files, path)
		} else if path != dir && !strings.Contains(path[len(dir)+1:], "/") {
			level2Dirs++
			progress(float64(level2Dirs) / ShardsPerLevel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	progress(1.0)
	return files, nil
}

// Package cache implements operations over the whole cache tree: opening and
// initializing the root, storing and fetching artifacts by key, and
// inspecting and cleaning the tree shard by shard. Many independent processes
// may run these operations against the same root concurrently; all
// coordination happens through the filesystem semantics of the underlying
// fsutil primitives.
package cache

import (
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/glorpus-work/buildcache/pkg/errors"
	"github.com/glorpus-work/buildcache/pkg/fsutil"
	"github.com/glorpus-work/buildcache/pkg/shard"
	"github.com/glorpus-work/buildcache/pkg/stat"
)

// DefaultManager implements the Manager interface for cache operations.
type DefaultManager struct {
	directory string
	levels    int
	opts      fsutil.MaterializeOptions
}

// NewManager creates a new cache manager for the given root directory, shard
// fan-out depth and materialization options.
func NewManager(directory string, levels int, opts fsutil.MaterializeOptions) *DefaultManager {
	return &DefaultManager{
		directory: directory,
		levels:    levels,
		opts:      opts,
	}
}

// Open ensures the cache root exists, carries a CACHEDIR.TAG and a
// compatible format version file. Safe to call from many processes at once.
func (cm *DefaultManager) Open() error {
	if cm.directory == "" {
		return errors.ErrCacheDirectory
	}
	if err := fsutil.EnsureDir(cm.directory); err != nil {
		return err
	}
	if err := cm.checkFormatVersion(); err != nil {
		return err
	}
	return cm.writeCacheDirTag()
}

// GetDirectory returns the cache root directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// EntryPath returns the path of the entry for key inside the sharded tree.
func (cm *DefaultManager) EntryPath(key, suffix string) string {
	return shard.PathInCache(cm.directory, cm.levels, key, suffix)
}

// Put stores the file at source under key and returns the entry path. The
// artifact is written via a temp file so concurrent readers never observe a
// partial entry.
func (cm *DefaultManager) Put(key, suffix, source string) (string, error) {
	dest := cm.EntryPath(key, suffix)
	if err := fsutil.EnsureFileDir(dest); err != nil {
		return "", err
	}
	if err := fsutil.Materialize(source, dest, true, cm.opts); err != nil {
		return "", err
	}
	return dest, nil
}

// Get materializes the artifact cached under key to dest. A miss returns
// (false, nil).
func (cm *DefaultManager) Get(key, suffix, dest string) (bool, error) {
	source := cm.EntryPath(key, suffix)
	if _, err := os.Stat(source); err != nil {
		if stat.IsNotFoundOrStale(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to stat %s", source)
	}
	if err := fsutil.Materialize(source, dest, true, cm.opts); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the entry for key. A missing entry is success.
func (cm *DefaultManager) Remove(key, suffix string) error {
	path := cm.EntryPath(key, suffix)
	if _, err := os.Lstat(path); err != nil {
		if stat.IsNotFoundOrStale(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to lstat %s", path)
	}
	return fsutil.SafeUnlink(path, fsutil.LogFailure)
}

// GetInfo walks all 16 level-1 shards and reports file count and total size.
// progress may be nil.
func (cm *DefaultManager) GetInfo(progress shard.Progress) (*Info, error) {
	if progress == nil {
		progress = func(float64) {}
	}

	info := &Info{
		Directory: cm.directory,
		Levels:    cm.levels,
	}

	err := shard.ForEachShard(cm.directory, func(subdir string, p shard.Progress) error {
		files, err := shard.TopLevelFiles(subdir, p)
		if err != nil {
			return err
		}
		for _, f := range files {
			fi, err := os.Lstat(f)
			if err != nil {
				if stat.IsNotFoundOrStale(err) {
					continue
				}
				return errors.Wrapf(err, "failed to lstat %s", f)
			}
			info.Files++
			info.TotalSize += fi.Size()
		}
		return nil
	}, progress)
	if err != nil {
		return nil, err
	}

	return info, nil
}

// Clean wipes all level-1 shards and returns what was removed. The cache
// root itself, its tag and version files stay in place. progress may be nil.
func (cm *DefaultManager) Clean(progress shard.Progress) (*CleanResult, error) {
	if progress == nil {
		progress = func(float64) {}
	}

	result := &CleanResult{}
	err := shard.ForEachShard(cm.directory, func(subdir string, p shard.Progress) error {
		files, err := shard.TopLevelFiles(subdir, func(float64) {})
		if err != nil {
			return err
		}
		for _, f := range files {
			if fi, err := os.Lstat(f); err == nil {
				result.TotalFreed += fi.Size()
				result.FilesRemoved++
			}
		}
		if err := fsutil.Wipe(subdir); err != nil {
			return err
		}
		p(1.0)
		return nil
	}, progress)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (cm *DefaultManager) checkFormatVersion() error {
	versionPath := filepath.Join(cm.directory, versionFileName)

	data, err := os.ReadFile(versionPath)
	if err != nil {
		if !stat.IsNotFoundOrStale(err) {
			return errors.Wrapf(err, "failed to read %s", versionPath)
		}
		// New cache root; claim it. A concurrent process writing the same
		// content is harmless.
		return os.WriteFile(versionPath, []byte(FormatVersion+"\n"), fsutil.FileModeDefault)
	}

	onDisk, err := goversion.NewVersion(strings.TrimSpace(string(data)))
	if err != nil {
		return errors.Wrapf(errors.ErrVersionIncompatible, "unparsable version in %s", versionPath)
	}
	constraint, err := goversion.NewConstraint(formatConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(onDisk) {
		return errors.Wrapf(errors.ErrVersionIncompatible, "cache at %s has format version %s", cm.directory, onDisk)
	}
	return nil
}

func (cm *DefaultManager) writeCacheDirTag() error {
	tagPath := filepath.Join(cm.directory, shard.CacheDirTagName)
	if _, err := os.Lstat(tagPath); err == nil {
		return nil
	}
	return os.WriteFile(tagPath, []byte(cacheDirTagContent), fsutil.FileModeDefault)
}

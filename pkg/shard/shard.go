// Package shard maps cache keys onto the sharded on-disk directory layout
// (a fixed 16-way hex fan-out per level) and enumerates cache entries across
// shards.
package shard

import (
	"fmt"
	"strings"
)

const (
	// MinLevels and MaxLevels bound the number of single-hex-character
	// fan-out levels under the cache root.
	MinLevels = 1
	MaxLevels = 8

	// ShardsPerLevel is the fan-out of one level.
	ShardsPerLevel = 16
)

// Progress receives a monotonically non-decreasing completion fraction in
// [0,1]. Every top-level operation reports 1.0 exactly once, as its final
// call. Implementations must not block; they run synchronously on the
// calling goroutine.
type Progress func(fraction float64)

// SubdirVisitor is invoked once per shard subdirectory together with a
// progress receiver already scaled to that shard's slice of the whole
// operation.
type SubdirVisitor func(subdir string, progress Progress) error

// PathInCache builds the path of a cache entry: one single-character
// subdirectory per shard level taken from the key prefix, then the remaining
// key characters plus suffix as the leaf filename. Invalid levels or a key
// shorter than levels+1 characters are programming errors.
func PathInCache(root string, levels int, key, suffix string) string {
	if levels < MinLevels || levels > MaxLevels {
		panic(fmt.Sprintf("shard: levels must be in [%d, %d], got %d", MinLevels, MaxLevels, levels))
	}
	if levels >= len(key) {
		panic(fmt.Sprintf("shard: key of length %d is too short for %d levels", len(key), levels))
	}

	var b strings.Builder
	b.Grow(len(root) + 2*levels + 1 + len(key) - levels + len(suffix))
	b.WriteString(root)
	for i := 0; i < levels; i++ {
		b.WriteByte('/')
		b.WriteByte(key[i])
	}
	b.WriteByte('/')
	b.WriteString(key[levels:])
	b.WriteString(suffix)
	return b.String()
}

// ForEachShard visits the 16 level-1 shard subdirectories of root in
// ascending hex order. Each visitor call receives a progress receiver that
// remaps the visitor's own [0,1] range into that shard's sixteenth of the
// global range, so global progress stays monotonic no matter how unevenly
// work is distributed across shards. A visitor error aborts the iteration;
// visitors that want per-shard failures to stay local swallow them.
func ForEachShard(root string, visit SubdirVisitor, progress Progress) error {
	for i := 0; i < ShardsPerLevel; i++ {
		base := float64(i) / ShardsPerLevel
		progress(base)
		subdir := fmt.Sprintf("%s/%x", root, i)
		err := visit(subdir, func(inner float64) {
			progress(base + inner/ShardsPerLevel)
		})
		if err != nil {
			return err
		}
	}
	progress(1.0)
	return nil
}

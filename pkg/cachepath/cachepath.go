// Package cachepath implements the path algebra used to build
// location-independent cache keys: absolute-path normalization, common-prefix
// computation and relative-path construction. The operations are exactly
// reversible so that normalize, relativize and resolve reproduce the original
// file identity.
package cachepath

import (
	"fmt"
	"strings"
)

// IsAbsolute reports whether path is absolute.
func IsAbsolute(path string) bool {
	return path != "" && path[0] == '/'
}

// BaseName returns the part of path after the last separator, or path itself
// if it has no separator.
func BaseName(path string) string {
	if n := strings.LastIndexByte(path, '/'); n >= 0 {
		return path[n+1:]
	}
	return path
}

// DirName returns everything up to the last separator: "." for a path with no
// separator and "/" for a direct child of the root.
func DirName(path string) string {
	n := strings.LastIndexByte(path, '/')
	switch {
	case n < 0:
		return "."
	case n == 0:
		return "/"
	default:
		return path[:n]
	}
}

// NormalizeAbsolute rewrites an absolute path into canonical form in a single
// left-to-right scan: "." segments are dropped, ".." removes the most
// recently retained segment (a no-op at the root) and duplicate separators
// collapse. The result never has a trailing separator except for the root
// itself, and the function is idempotent. Relative input is returned
// unchanged; normalization is undefined for it.
func NormalizeAbsolute(path string) string {
	if !IsAbsolute(path) {
		return path
	}

	result := make([]byte, 1, len(path)+1)
	result[0] = '/'
	left := 1

	for left < len(path) {
		right := strings.IndexByte(path[left:], '/')
		var part string
		if right < 0 {
			part = path[left:]
		} else {
			part = path[left : left+right]
		}

		switch part {
		case "..":
			if len(result) > 1 {
				// "/x/../part" -> "/part"
				i := strings.LastIndexByte(string(result[:len(result)-1]), '/')
				result = result[:i+1]
			}
			// "/../part" -> "/part"
		case ".":
			// "/x/." -> "/x"
		default:
			result = append(result, part...)
			if result[len(result)-1] != '/' {
				result = append(result, '/')
			}
		}

		if right < 0 {
			break
		}
		left += right + 1
	}

	for len(result) > 1 && result[len(result)-1] == '/' {
		result = result[:len(result)-1]
	}
	return string(result)
}

// CommonPrefixLength returns the length of the longest shared leading run of
// path segments of two absolute paths, as a byte offset that always falls on
// a separator boundary. It is 0 if either input is the root path or empty.
func CommonPrefixLength(dir, path string) int {
	if dir == "" || path == "" || dir == "/" || path == "/" {
		return 0
	}

	limit := len(dir)
	if len(path) < limit {
		limit = len(path)
	}
	i := 0
	for i < limit && dir[i] == path[i] {
		i++
	}

	if (i == len(dir) && i == len(path)) ||
		(i == len(dir) && path[i] == '/') ||
		(i == len(path) && dir[i] == '/') {
		return i
	}

	// The shared byte run ends inside a segment; back up to the enclosing
	// separator so the prefix never splits a segment.
	for {
		i--
		if i == 0 || dir[i] == '/' || path[i] == '/' {
			break
		}
	}
	return i
}

// RelativePath returns path expressed relative to dir. Both inputs must be
// absolute and normalized; passing a relative path is a programming error.
// The result collapses to "." when the paths are equal.
func RelativePath(dir, path string) string {
	if !IsAbsolute(dir) || !IsAbsolute(path) {
		panic(fmt.Sprintf("cachepath: RelativePath requires absolute paths, got %q and %q", dir, path))
	}

	var result strings.Builder
	prefixLen := CommonPrefixLength(dir, path)
	if prefixLen > 0 || dir != "/" {
		for i := prefixLen; i < len(dir); i++ {
			if dir[i] == '/' {
				if result.Len() > 0 {
					result.WriteByte('/')
				}
				result.WriteString("..")
			}
		}
	}
	if len(path) > prefixLen {
		if result.Len() > 0 {
			result.WriteByte('/')
		}
		result.WriteString(path[prefixLen+1:])
	}

	rel := strings.TrimRight(result.String(), "/")
	if rel == "" {
		return "."
	}
	return rel
}

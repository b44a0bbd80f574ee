package fsutil

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"syscall"

	"github.com/glorpus-work/buildcache/pkg/errors"
	"github.com/glorpus-work/buildcache/pkg/stat"
)

// Visitor receives every entry found under a traversal root. Files are
// reported as they are found; a directory is reported with isDir=true only
// after all of its children have been reported (post-order). Returning an
// error aborts the traversal.
type Visitor func(path string, isDir bool) error

// Traverse visits every entry under root, depth first. Entries removed by a
// concurrent process mid-walk are skipped silently. A root that cannot be
// opened as a directory is reported once as a single file. Symbolic links are
// reported as files and never followed.
func Traverse(root string, visit Visitor) error {
	// Explicit frame stack instead of call recursion so that adversarially
	// deep trees cannot exhaust goroutine stack space.
	type frame struct {
		path    string
		entries []os.DirEntry
		next    int
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if stderrors.Is(err, syscall.ENOTDIR) {
			return visit(root, false)
		}
		return errors.Wrapf(err, "failed to open directory %s", root)
	}

	stack := []frame{{path: root, entries: entries}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.entries) {
			if err := visit(top.path, true); err != nil {
				return err
			}
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++
		path := filepath.Join(top.path, entry.Name())

		if !entry.IsDir() {
			if err := visit(path, false); err != nil {
				return err
			}
			continue
		}

		children, err := os.ReadDir(path)
		if err != nil {
			if stat.IsNotFoundOrStale(err) {
				// Another process removed the directory between the parent
				// read and ours.
				continue
			}
			if stderrors.Is(err, syscall.ENOTDIR) {
				if err := visit(path, false); err != nil {
					return err
				}
				continue
			}
			return errors.Wrapf(err, "failed to open directory %s", path)
		}
		stack = append(stack, frame{path: path, entries: children})
	}
	return nil
}

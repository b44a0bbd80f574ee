//go:build !linux

package fsutil

import "github.com/glorpus-work/buildcache/pkg/errors"

func cloneFile(source, dest string, viaTmp bool) error {
	return errors.ErrUnsupported
}

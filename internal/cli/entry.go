package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/buildcache/internal/logger"
)

var (
	putSuffix  string
	getSuffix  string
	rmSuffix   string
	pathSuffix string
)

// NewPutCmd creates the put command.
func NewPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put KEY FILE",
		Short: "Store a file under a cache key",
		Long:  "Copy, link or clone FILE into the cache entry addressed by KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPut(args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&putSuffix, "suffix", "", "filename suffix of the cache entry")

	return cmd
}

// NewGetCmd creates the get command.
func NewGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY FILE",
		Short: "Fetch a cached entry into a file",
		Long:  "Materialize the cache entry addressed by KEY at FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGet(args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&getSuffix, "suffix", "", "filename suffix of the cache entry")

	return cmd
}

// NewRemoveCmd creates the rm command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm KEY",
		Short: "Remove a cached entry",
		Long:  "Remove the cache entry addressed by KEY; a missing entry is not an error",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRemove(args[0])
		},
	}

	cmd.Flags().StringVar(&rmSuffix, "suffix", "", "filename suffix of the cache entry")

	return cmd
}

// NewPathCmd creates the path command.
func NewPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path KEY",
		Short: "Print the on-disk path of a cache key",
		Long:  "Print the sharded path the cache entry for KEY lives at, whether or not it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPath(args[0])
		},
	}

	cmd.Flags().StringVar(&pathSuffix, "suffix", "", "filename suffix of the cache entry")

	return cmd
}

func runPut(key, source string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := openCacheManager(cfg)
	if err != nil {
		return err
	}

	entry, err := manager.Put(key, putSuffix, source)
	if err != nil {
		return err
	}

	logger.Success("Stored cache entry", logger.Fields{"key": key, "path": entry})
	return nil
}

func runGet(key, dest string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := openCacheManager(cfg)
	if err != nil {
		return err
	}

	hit, err := manager.Get(key, getSuffix, dest)
	if err != nil {
		return err
	}
	if !hit {
		return fmt.Errorf("cache miss for key %s", key)
	}

	logger.Success("Fetched cache entry", logger.Fields{"key": key, "path": dest})
	return nil
}

func runRemove(key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := openCacheManager(cfg)
	if err != nil {
		return err
	}

	if err := manager.Remove(key, rmSuffix); err != nil {
		return err
	}

	logger.Success("Removed cache entry", logger.Fields{"key": key})
	return nil
}

func runPath(key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, err := openCacheManager(cfg)
	if err != nil {
		return err
	}

	fmt.Println(manager.EntryPath(key, pathSuffix))
	return nil
}

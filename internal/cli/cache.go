package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/buildcache/pkg/cache"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache tree",
		Long:  "Clean, show information about, and manage the on-disk cache tree",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove all cached entries",
		Long:  "Remove every cached artifact to free up disk space",
		RunE:  runCacheClean,
	}

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display entry count and size information about the cache",
		RunE:  runCacheInfo,
	}

	return cmd
}

func newCacheDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the cache root directory",
		RunE:  runCacheDir,
	}

	return cmd
}

func runCacheClean(*cobra.Command, []string) error {
	op, err := newCacheOperation()
	if err != nil {
		return err
	}

	msg, err := op.Clean(nil)
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}

func runCacheInfo(*cobra.Command, []string) error {
	op, err := newCacheOperation()
	if err != nil {
		return err
	}

	msg, err := op.GetInfo(nil)
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}

func runCacheDir(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println(cfg.Cache.Dir)
	return nil
}

func newCacheOperation() (*cache.Operation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	manager, err := openCacheManager(cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewOperation(manager), nil
}

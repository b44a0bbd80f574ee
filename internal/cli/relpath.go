package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/buildcache/pkg/cachepath"
	"github.com/glorpus-work/buildcache/pkg/stat"
)

// NewRelPathCmd creates the relpath command.
func NewRelPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relpath PATH...",
		Short: "Rewrite paths relative to the configured base directory",
		Long: "Print each PATH rewritten relative to the working directory when it " +
			"lies under the configured base directory, or unchanged otherwise. " +
			"This is the rewriting applied when computing relocatable cache keys.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRelPath(args)
		},
	}

	return cmd
}

func runRelPath(paths []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sys := stat.OS{}
	actualCwd := cachepath.ActualCwd()
	apparentCwd := cachepath.ApparentCwd(sys, actualCwd)
	relativizer := cachepath.NewRelativizer(sys, cfg.Cache.BaseDir, actualCwd, apparentCwd)

	for _, path := range paths {
		fmt.Println(relativizer.MakeRelative(cachepath.NormalizeAbsolute(path)))
	}
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/buildcache/internal/logger"
	"github.com/glorpus-work/buildcache/pkg/archive"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the cache to an archive",
		Long:  "Pack the whole cache tree into a tar.gz archive at FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := archive.NewManager().Export(cmd.Context(), cfg.Cache.Dir, args[0]); err != nil {
				return err
			}

			logger.Success("Exported cache", logger.Fields{"archive": args[0]})
			return nil
		},
	}

	return cmd
}

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a cache archive",
		Long:  "Restore a tar.gz archive created by export into the cache tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := archive.NewManager().Import(cmd.Context(), args[0], cfg.Cache.Dir); err != nil {
				return err
			}

			// Imported trees may predate the current format; verify before
			// declaring success.
			if _, err := openCacheManager(cfg); err != nil {
				return err
			}

			logger.Success("Imported cache", logger.Fields{"archive": args[0]})
			return nil
		},
	}

	return cmd
}

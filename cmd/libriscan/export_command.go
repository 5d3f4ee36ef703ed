package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"libriscan/internal/catalog"
	"libriscan/internal/export"
)

func newExportCommand(cmdCtx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputFlag)
			if target == "" {
				target = filepath.Join(cfg.Paths.ExportDir, export.DefaultFileName(format, time.Now()))
			}

			return cmdCtx.withStore(func(store *catalog.Store) error {
				entries, err := store.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				written, err := export.ToFile(target, format, entries)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), written)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "csv", "Export format (csv or json)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination file (defaults to the export directory)")
	return cmd
}

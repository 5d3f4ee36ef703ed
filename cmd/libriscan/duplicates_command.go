package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"libriscan/internal/catalog"
	"libriscan/internal/dedup"
	"libriscan/internal/logging"
)

type duplicateGroupView struct {
	Entries []entryView `json:"entries"`
}

func newDuplicatesCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOut bool
	var notify bool

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Find likely duplicate entries",
		Long: `Scan the catalog for likely duplicates.

Entries sharing an identifier are always grouped. Entries without a
shared identifier are grouped when both title and author are close
matches under edit-distance similarity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			return cmdCtx.withStore(func(store *catalog.Store) error {
				entries, err := store.Snapshot(cmd.Context())
				if err != nil {
					return err
				}

				detector := dedup.NewDetector(
					dedup.WithThreshold(cfg.Dedup.SimilarityThreshold),
					dedup.WithDetectorLogger(cmdCtx.ensureLogger()),
				)
				groups := detector.FindDuplicates(catalog.DedupEntries(entries))

				byID := make(map[int64]catalog.Entry, len(entries))
				for _, entry := range entries {
					byID[entry.ID] = entry
				}

				if notify && len(groups) > 0 {
					total := 0
					for _, group := range groups {
						total += len(group.Entries)
					}
					if err := cmdCtx.notifier().NotifyDuplicatesFound(cmd.Context(), len(groups), total); err != nil {
						cmdCtx.ensureLogger().Warn("duplicates notification failed", logging.Error(err))
					}
				}

				if jsonOut {
					views := make([]duplicateGroupView, len(groups))
					for i, group := range groups {
						members := make([]catalog.Entry, 0, len(group.Entries))
						for _, member := range group.Entries {
							members = append(members, byID[member.ID])
						}
						views[i] = duplicateGroupView{Entries: entryViews(members)}
					}
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(groups) == 0 {
					fmt.Fprintln(out, "No duplicates found")
					return nil
				}

				for i, group := range groups {
					fmt.Fprintf(out, "Group %d:\n", i+1)
					rows := make([][]string, 0, len(group.Entries))
					for _, member := range group.Entries {
						entry := byID[member.ID]
						rows = append(rows, []string{
							strconv.FormatInt(entry.ID, 10),
							entry.Title,
							displayValue(entry.Author),
							displayValue(entry.ISBN),
						})
					}
					table := renderTable(
						[]string{"ID", "Title", "Author", "ISBN"},
						rows,
						[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
					)
					fmt.Fprintln(out, indentBlock(table, "  "))
				}
				fmt.Fprintf(out, "%d duplicate groups\n", len(groups))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit duplicate groups as JSON")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send a notification when duplicates are found")
	return cmd
}

func indentBlock(block, prefix string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"libriscan/internal/catalog"
	"libriscan/internal/isbn"
)

func newCatalogCommand(cmdCtx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage catalog entries",
	}

	catalogCmd.AddCommand(newCatalogAddCommand(cmdCtx))
	catalogCmd.AddCommand(newCatalogListCommand(cmdCtx))
	catalogCmd.AddCommand(newCatalogSearchCommand(cmdCtx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(cmdCtx))

	return catalogCmd
}

func newCatalogAddCommand(cmdCtx *commandContext) *cobra.Command {
	var author string
	var isbnFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return errors.New("title is required")
			}

			identifier := strings.TrimSpace(isbnFlag)
			if identifier != "" {
				normalized := isbn.Normalize(identifier)
				if !isbn.IsValidISBN10(normalized) && !isbn.IsValidISBN13(normalized) {
					return fmt.Errorf("%q is not a valid ISBN", identifier)
				}
				identifier = normalized
			}

			return cmdCtx.withStore(func(store *catalog.Store) error {
				entry, err := store.Add(cmd.Context(), title, strings.TrimSpace(author), identifier)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, entryViews([]catalog.Entry{*entry})[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %s\n", entry.ID, entry.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&author, "author", "a", "", "Author name")
	cmd.Flags().StringVarP(&isbnFlag, "isbn", "i", "", "ISBN-10 or ISBN-13")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the created entry as JSON")
	return cmd
}

func newCatalogListCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(store *catalog.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, entryViews(entries))
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				fmt.Fprintln(out, renderTable(entryTableHeaders, entryTableRows(entries), entryTableAligns))
				fmt.Fprintf(out, "%d entries\n", len(entries))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit entries as JSON")
	return cmd
}

func newCatalogSearchCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries by title or author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			if query == "" {
				return errors.New("search query is required")
			}
			return cmdCtx.withStore(func(store *catalog.Store) error {
				entries, err := store.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, entryViews(entries))
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "No entries match %q\n", query)
					return nil
				}
				fmt.Fprintln(out, renderTable(entryTableHeaders, entryTableRows(entries), entryTableAligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit matches as JSON")
	return cmd
}

func newCatalogRemoveCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			return cmdCtx.withStore(func(store *catalog.Store) error {
				if err := store.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", id)
				return nil
			})
		},
	}
}

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"libriscan/internal/isbn"
	"libriscan/internal/lookup"
	"libriscan/internal/services"
)

type lookupView struct {
	ISBN        string   `json:"isbn"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Publishers  []string `json:"publishers,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	Pages       int      `json:"pages,omitempty"`
}

func newLookupCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "lookup <isbn>",
		Short: "Fetch book metadata from Open Library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := isbn.Normalize(args[0])
			if !isbn.IsValidISBN10(normalized) && !isbn.IsValidISBN13(normalized) {
				return fmt.Errorf("%q is not a valid ISBN", args[0])
			}

			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := lookup.New(cfg.Lookup.BaseURL, time.Duration(cfg.Lookup.RequestTimeout)*time.Second)
			if err != nil {
				return err
			}

			book, err := client.FetchByISBN(cmd.Context(), normalized)
			if errors.Is(err, services.ErrNotFound) {
				return fmt.Errorf("no Open Library record for %s", normalized)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, lookupView{
					ISBN:        normalized,
					Title:       book.Title,
					Authors:     book.Authors,
					Publishers:  book.Publishers,
					PublishDate: book.PublishDate,
					Pages:       book.Pages,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:     %s\n", displayValue(book.Title))
			fmt.Fprintf(out, "Author:    %s\n", displayValue(strings.Join(book.Authors, ", ")))
			fmt.Fprintf(out, "Publisher: %s\n", displayValue(strings.Join(book.Publishers, ", ")))
			fmt.Fprintf(out, "Published: %s\n", displayValue(book.PublishDate))
			if book.Pages > 0 {
				fmt.Fprintf(out, "Pages:     %d\n", book.Pages)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit metadata as JSON")
	return cmd
}

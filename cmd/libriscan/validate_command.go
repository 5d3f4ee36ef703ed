package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"libriscan/internal/scanning"
)

type validationView struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Tier       string `json:"tier"`
	Valid      bool   `json:"valid"`
}

func newValidateCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "validate <value>...",
		Short:       "Validate ISBN checksums",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views := make([]validationView, 0, len(args))
			invalid := 0
			for _, arg := range args {
				normalized, tier := scanning.Classify(arg)
				valid := tier != scanning.TierUnclassified
				if !valid {
					invalid++
				}
				views = append(views, validationView{
					Input:      arg,
					Normalized: normalized,
					Tier:       tier.String(),
					Valid:      valid,
				})
			}

			if jsonOut {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, view := range views {
					if view.Valid {
						fmt.Fprintln(out, statusLine(out, "✓", ansiGreen,
							fmt.Sprintf("%s is a valid %s (normalized %s)", view.Input, view.Tier, view.Normalized)))
					} else {
						fmt.Fprintln(out, statusLine(out, "✗", ansiRed,
							fmt.Sprintf("%s is not a valid ISBN", view.Input)))
					}
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d values failed validation", invalid, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit validation results as JSON")
	return cmd
}

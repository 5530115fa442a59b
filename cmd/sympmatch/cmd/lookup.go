package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	var (
		exact      bool
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Find disease entries by name",
		Example: `  sympmatch lookup cold
  sympmatch lookup --exact "Common Cold"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, _, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			hits, err := svc.FindByName(args[0], exact, limit)
			if err != nil {
				return err
			}

			if jsonOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(hits)
			}

			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintf(out, "No diseases named %q.\n", args[0])
				return nil
			}
			for _, h := range hits {
				fmt.Fprintf(out, "%s\n  symptoms: %s\n", h.Disease, h.Symptoms)
				if h.Tips != "" {
					fmt.Fprintf(out, "  advice:   %s\n", h.Tips)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "Match the full disease name instead of a substring")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of entries to return")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")

	return cmd
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sympmatch/sympmatch/internal/matcher"
)

func newMatchCmd() *cobra.Command {
	var (
		topK       int
		threshold  float64
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "match <symptom text...>",
		Short: "Match free-text symptoms against the disease corpus",
		Example: `  sympmatch match "I have sneezing and a runny nose"
  sympmatch match --top 5 --threshold 0.1 fever chills headache`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, _, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			// Config supplies defaults for flags the user didn't set.
			if !cmd.Flags().Changed("top") {
				topK = cfg.Match.TopK
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Match.Threshold
			}

			query := strings.Join(args, " ")
			results, err := svc.Match(query, topK, threshold)
			if err != nil {
				return err
			}

			if jsonOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
			}
			printResults(cmd, query, results)
			return nil
		},
	}

	cmd.Flags().IntVar(&topK, "top", 3, "Maximum number of matches to return")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.2, "Minimum similarity score in [0,1]")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")

	return cmd
}

func printResults(cmd *cobra.Command, query string, results []matcher.Result) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No diseases matched %q.\n", query)
		return
	}
	for i, r := range results {
		fmt.Fprintf(out, "%d. %s (score %.3f)\n", i+1, r.Disease, r.Score)
		if len(r.MatchedKeywords) > 0 {
			fmt.Fprintf(out, "   keywords: %s\n", strings.Join(r.MatchedKeywords, ", "))
		}
		if r.Tips != "" {
			fmt.Fprintf(out, "   advice:   %s\n", r.Tips)
		}
	}
}

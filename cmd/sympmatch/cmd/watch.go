package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sympmatch/sympmatch/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Fit the corpus and re-fit automatically when it changes",
		Long: `Fits the corpus, then keeps the index fresh by re-fitting whenever
the corpus file changes on disk. A failed re-fit keeps the previous
index serving. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, logger, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := watcher.New(cfg.Corpus.Path, watcher.Options{
				PollInterval:   cfg.Watch.PollInterval.Std(),
				DebounceWindow: cfg.Watch.DebounceWindow.Std(),
			}, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes. Ctrl-C to stop.\n", cfg.Corpus.Path)
			err = w.Run(ctx, func() {
				if fitErr := svc.Fit(cfg.Corpus.Path); fitErr != nil {
					logger.Warn("re-fit failed, previous index keeps serving",
						"error", fitErr.Error())
				}
			})
			if ctx.Err() != nil {
				// Interrupted: normal shutdown.
				return nil
			}
			return err
		},
	}
}

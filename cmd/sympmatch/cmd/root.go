// Package cmd provides the CLI commands for sympmatch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sympmatch/sympmatch/internal/config"
	"github.com/sympmatch/sympmatch/internal/logging"
	"github.com/sympmatch/sympmatch/internal/matcher"
	"github.com/sympmatch/sympmatch/pkg/version"
)

var (
	configPath string
	corpusPath string
	debugMode  bool
)

// NewRootCmd creates the root command for the sympmatch CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sympmatch",
		Short: "Symptom-to-disease lexical matching engine",
		Long: `sympmatch matches free-text symptom descriptions against a disease
corpus: it normalizes the text, expands synonyms, corrects misspellings
against the corpus vocabulary, and ranks diseases by TF-IDF cosine
similarity.

It is a best-effort lexical matcher, not a diagnostic system.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("sympmatch version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "sympmatch.yaml", "Path to the config file")
	cmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "Path to the disease corpus CSV (overrides config)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// setup loads configuration and builds the logger and a fitted
// matcher service. The cleanup function flushes logging.
func setup() (config.Config, *matcher.Service, *slog.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, nil, err
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}

	logCfg := logging.Config{
		Level:         cfg.Logging.Level,
		FilePath:      cfg.Logging.FilePath,
		WriteToStderr: cfg.Logging.FilePath == "",
	}
	if debugMode {
		logCfg.Level = "debug"
	}
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return config.Config{}, nil, nil, nil, err
	}

	svc := matcher.New(
		matcher.WithLogger(logger),
		matcher.WithSynonymsPath(cfg.Corpus.SynonymsPath),
	)
	if err := svc.Fit(cfg.Corpus.Path); err != nil {
		cleanup()
		return config.Config{}, nil, nil, nil, err
	}
	return cfg, svc, logger, cleanup, nil
}

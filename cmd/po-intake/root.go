package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcormier/po-intake/internal/common"
)

var (
	// cfg supplies POINTAKE_* environment defaults; flags override it.
	cfg = common.LoadConfig()

	verbose bool
	dbPath  string

	rootCmd = &cobra.Command{
		Use:   "po-intake",
		Short: "Purchase-order intake triage and calibration",
		Long: `po-intake routes extracted purchase-order line items into automation
lanes, calibrates confidence gates from labeled truth tables, triages
multi-page packets into logical documents, and fingerprints parser output
for regression checks.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.Database.Path, "embedded database path")

	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(catalogCmd)
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

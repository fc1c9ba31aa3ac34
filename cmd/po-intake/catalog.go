package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pcormier/po-intake/internal/catalog"
	"github.com/pcormier/po-intake/internal/repository"
)

var catalogVersion string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the versioned reference catalogue",
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load <entries.yaml>",
	Short: "Load catalogue entries for a version from a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var seed struct {
			Version string          `yaml:"version"`
			Entries []catalog.Entry `yaml:"entries"`
		}
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("catalogue seed: decode: %w", err)
		}
		version := catalogVersion
		if version == "" {
			version = seed.Version
		}
		if version == "" {
			return fmt.Errorf("catalogue seed: no version given (set version: in the file or pass --version)")
		}
		if len(seed.Entries) == 0 {
			return fmt.Errorf("catalogue seed: no entries")
		}

		db, err := repository.Open(ctx, dbPath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.NewCatalogRepository(db, logger).SaveEntries(ctx, version, seed.Entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %d entries as catalogue version %s\n", len(seed.Entries), version)
		return nil
	},
}

func init() {
	catalogLoadCmd.Flags().StringVar(&catalogVersion, "version", "", "catalogue version label")
	catalogCmd.AddCommand(catalogLoadCmd)
}

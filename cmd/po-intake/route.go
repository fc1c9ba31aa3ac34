package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pcormier/po-intake/internal/common"
	"github.com/pcormier/po-intake/internal/entity"
	"github.com/pcormier/po-intake/internal/export"
	"github.com/pcormier/po-intake/internal/extract"
	"github.com/pcormier/po-intake/internal/pipeline"
	"github.com/pcormier/po-intake/internal/repository"
)

var (
	routePolicyPath     string
	routeCatalogVersion string
	routeXLSXOut        string
)

var routeCmd = &cobra.Command{
	Use:   "route <extraction.json>",
	Short: "Enrich and route extracted line items into automation lanes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := cmd.Context()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res, err := extract.DecodeExtraction(raw)
		if err != nil {
			return err
		}

		policy := policyFromConfig(cfg)
		if routePolicyPath != "" {
			data, err := os.ReadFile(routePolicyPath)
			if err != nil {
				return err
			}
			if policy, err = entity.LoadPolicyConfig(data); err != nil {
				return err
			}
		}

		db, err := repository.Open(ctx, dbPath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		catalogRepo := repository.NewCatalogRepository(db, logger)
		version := routeCatalogVersion
		if version == "" {
			if version, err = catalogRepo.LatestVersion(ctx); err != nil {
				return err
			}
		}
		lookup, err := catalogRepo.LoadVersion(ctx, version)
		if err != nil {
			return err
		}

		proc := pipeline.NewProcessor(logger, lookup, policy)
		proc.Weights.ReviewThreshold = cfg.Policy.FieldReviewMin
		routed := proc.ProcessExtraction(res)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(routed); err != nil {
			return err
		}

		if routeXLSXOut != "" {
			book, err := export.NewService(logger).BuildLinesXLSX(routed)
			if err != nil {
				return err
			}
			out := resolveExportPath(cfg.Export.OutputDir, routeXLSXOut)
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, book, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
		}
		return nil
	},
}

// policyFromConfig derives the default routing policy from process-level
// configuration. A --policy file replaces it entirely.
func policyFromConfig(c *common.Config) entity.PolicyConfig {
	policy := entity.DefaultPolicyConfig()
	policy.Gates = entity.PolicyGates{
		AutoStageMin: c.Policy.AutoStageMin,
		ReviewMin:    c.Policy.ReviewMin,
		BlockBelow:   c.Policy.BlockBelow,
	}
	return policy
}

// resolveExportPath places bare workbook filenames into the configured export
// directory. Explicit paths are used as given.
func resolveExportPath(outputDir, name string) string {
	if outputDir == "" || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(outputDir, name)
}

func init() {
	routeCmd.Flags().StringVar(&routePolicyPath, "policy", cfg.Policy.ConfigPath, "policy YAML (gates + exclusion rules)")
	routeCmd.Flags().StringVar(&routeCatalogVersion, "catalog-version", cfg.Policy.CatalogVersion, "reference catalogue version (default: latest)")
	routeCmd.Flags().StringVar(&routeXLSXOut, "xlsx", "", "also write routed lines as an XLSX workbook")
}

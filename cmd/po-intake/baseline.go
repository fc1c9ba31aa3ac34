package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pcormier/po-intake/internal/extract"
	"github.com/pcormier/po-intake/internal/repository"
	"github.com/pcormier/po-intake/internal/signature"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Manage regression baselines for parser output",
}

var baselineRecordCmd = &cobra.Command{
	Use:   "record <source-file> <extraction.json>",
	Short: "Record the current parse signature as the baseline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := cmd.Context()

		sig, err := buildSignatureFromFiles(args[0], args[1])
		if err != nil {
			return err
		}

		db, err := repository.Open(ctx, dbPath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.NewBaselineRepository(db, logger).Put(ctx, sig); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recorded baseline %s (%d docs)\n", sig.FileHash[:12], len(sig.Docs))
		return nil
	},
}

var baselineCheckCmd = &cobra.Command{
	Use:   "check <source-file> <extraction.json>",
	Short: "Diff the current parse signature against the stored baseline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := cmd.Context()

		sig, err := buildSignatureFromFiles(args[0], args[1])
		if err != nil {
			return err
		}

		db, err := repository.Open(ctx, dbPath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		baseline, err := repository.NewBaselineRepository(db, logger).Get(ctx, sig.FileHash)
		if err != nil {
			return err
		}

		result := signature.Diff(*baseline, sig)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if !result.OK {
			return fmt.Errorf("regression check failed with %d error(s)", len(result.Errors))
		}
		return nil
	},
}

func buildSignatureFromFiles(sourcePath, extractionPath string) (signature.ParseSignature, error) {
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return signature.ParseSignature{}, err
	}
	raw, err := os.ReadFile(extractionPath)
	if err != nil {
		return signature.ParseSignature{}, err
	}
	res, err := extract.DecodeExtraction(raw)
	if err != nil {
		return signature.ParseSignature{}, err
	}
	return signature.Build(filepath.Base(sourcePath), signature.HashBytes(content), res.Docs, time.Now().UTC()), nil
}

func init() {
	baselineCmd.AddCommand(baselineRecordCmd)
	baselineCmd.AddCommand(baselineCheckCmd)
}

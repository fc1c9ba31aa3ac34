package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcormier/po-intake/internal/calibration"
)

var (
	calibrateBins     int
	calibrateMaxError float64
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate <truth-table.csv>",
	Short: "Compute calibration statistics and suggest policy gates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := calibration.ParseTruthCSV(f)
		if err != nil {
			return err
		}

		computed, err := calibration.Compute(rows, calibrateBins)
		if err != nil {
			return err
		}
		gates := calibration.SuggestGates(computed.Coverage, calibrateMaxError)

		out := struct {
			Calibration *calibration.Computed `json:"calibration"`
			Suggested   any                   `json:"suggested_gates"`
		}{computed, gates}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "calibrated over %d rows (scale %s)\n", computed.NRows, computed.Scale)
		return nil
	},
}

func init() {
	calibrateCmd.Flags().IntVar(&calibrateBins, "bins", calibration.DefaultBins, "reliability bin count")
	calibrateCmd.Flags().Float64Var(&calibrateMaxError, "max-error", calibration.DefaultMaxError, "maximum tolerable auto-process error rate")
}

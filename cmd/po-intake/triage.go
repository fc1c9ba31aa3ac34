package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcormier/po-intake/internal/triage"
)

var (
	triageVendors   []string
	triagePageBreak string
)

var triageCmd = &cobra.Command{
	Use:   "triage <pages.txt>",
	Short: "Classify packet pages and merge them into logical segments",
	Long: `Reads a text file of page contents separated by a form-feed line
(override with --page-break), classifies every page, and prints the merged
document segments.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		pages := strings.Split(string(data), triagePageBreak)

		scorer := triage.NewScorer(triageVendors)
		segments := triage.BuildSegments(scorer.TriagePages(pages))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(segments)
	},
}

func init() {
	triageCmd.Flags().StringSliceVar(&triageVendors, "vendor", nil, "known vendor-name marker (repeatable)")
	triageCmd.Flags().StringVar(&triagePageBreak, "page-break", "\f", "page separator in the input file")
}

package calibration

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TruthTableRow is one historical labeled observation. Immutable once parsed.
type TruthTableRow struct {
	PredictedConfidence float64
	Correct             float64 // binary-ish; thresholded at >= 0.5 downstream
	FieldCorrect        map[string]float64
	Signals             map[string]float64
}

// Accepted header synonyms, matched case-insensitively. Truth tables are
// hand-exported so column naming drifts between sources.
var (
	confidenceHeaders = []string{"confidence", "predicted_confidence", "pred_confidence", "conf", "score"}
	correctHeaders    = []string{"correct", "is_correct", "line_correct", "truth"}

	// Known edge-case signal columns (optionally prefixed has_).
	signalHeaders = []string{
		"special_layout", "custom_dimension", "zero_dollar",
		"rga_reference", "wiring_spec", "power_transfer", "third_party_ship",
	}
)

// ParseTruthCSV reads a comma-separated truth table with a header row and
// coerces it. Individual malformed rows are dropped; only a broken stream is
// an error. Callers must check for an empty result before computing stats.
func ParseTruthCSV(r io.Reader) ([]TruthTableRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("truth table: read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return CoerceTruthTable(records[0], records[1:]), nil
}

// CoerceTruthTable maps loosely-shaped tabular input onto truth rows.
// Rows missing a parseable predicted confidence or correctness value are
// silently filtered; partial corruption of hand-exported tables is expected.
func CoerceTruthTable(header []string, rows [][]string) []TruthTableRow {
	confIdx, correctIdx := -1, -1
	fieldIdx := map[int]string{}  // column -> field name
	signalIdx := map[int]string{} // column -> signal name

	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case confIdx < 0 && matchesAny(name, confidenceHeaders):
			confIdx = i
		case correctIdx < 0 && matchesAny(name, correctHeaders):
			correctIdx = i
		case strings.HasSuffix(name, "_correct"):
			fieldIdx[i] = strings.TrimSuffix(name, "_correct")
		case matchesAny(strings.TrimPrefix(name, "has_"), signalHeaders):
			signalIdx[i] = strings.ToUpper(strings.TrimPrefix(name, "has_"))
		}
	}
	if confIdx < 0 || correctIdx < 0 {
		return nil
	}

	out := make([]TruthTableRow, 0, len(rows))
	for _, rec := range rows {
		if confIdx >= len(rec) || correctIdx >= len(rec) {
			continue
		}
		conf, ok := parseNumeric(rec[confIdx])
		if !ok {
			continue
		}
		correct, ok := parseBinaryish(rec[correctIdx])
		if !ok {
			continue
		}
		row := TruthTableRow{PredictedConfidence: conf, Correct: correct}
		for i, field := range fieldIdx {
			if i >= len(rec) {
				continue
			}
			if v, ok := parseBinaryish(rec[i]); ok {
				if row.FieldCorrect == nil {
					row.FieldCorrect = map[string]float64{}
				}
				row.FieldCorrect[field] = v
			}
		}
		for i, sig := range signalIdx {
			if i >= len(rec) {
				continue
			}
			if v, ok := parseBinaryish(rec[i]); ok {
				if row.Signals == nil {
					row.Signals = map[string]float64{}
				}
				row.Signals[sig] = v
			}
		}
		out = append(out, row)
	}
	return out
}

func matchesAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBinaryish(s string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "t":
		return 1, true
	case "false", "no", "n", "f":
		return 0, true
	case "":
		return 0, false
	}
	return parseNumeric(s)
}

package calibration

import (
	"math"

	"github.com/pcormier/po-intake/internal/common"
)

// Confidence scales detected from raw truth-table values.
const (
	ScaleZeroOne     = "0_1"
	ScaleZeroHundred = "0_100"
)

// DefaultBins is the reliability-bin count used by the CLI and gate tooling.
const DefaultBins = 10

// CandidateThresholds is the fixed threshold list the coverage table is
// computed over.
var CandidateThresholds = []float64{0.5, 0.6, 0.7, 0.75, 0.8, 0.85, 0.9, 0.92, 0.95, 0.98}

// ReliabilityBin is one equal-width confidence interval. Bins are half-open
// [Min,Max) except the last, which is closed to include 1.0 exactly.
type ReliabilityBin struct {
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	AvgPredicted      float64 `json:"avg_predicted"`
	EmpiricalAccuracy float64 `json:"empirical_accuracy"`
	Count             int     `json:"count"`
}

// CoverageRow reports, for one candidate threshold, the fraction of rows at
// or above it and the empirical error rate among those rows.
type CoverageRow struct {
	Threshold         float64 `json:"threshold"`
	AutoRate          float64 `json:"auto_rate"`
	ExpectedErrorRate float64 `json:"expected_error_rate"`
}

// Computed is the derived, read-only summary of a truth-table collection.
// Recomputed fully on each run, never mutated incrementally.
type Computed struct {
	NRows              int                `json:"n_rows"`
	Scale              string             `json:"scale"`
	Accuracy           float64            `json:"accuracy"`
	FieldAccuracy      map[string]float64 `json:"field_accuracy,omitempty"`
	Brier              float64            `json:"brier"`
	ECE                float64            `json:"ece"`
	Bins               []ReliabilityBin   `json:"bins"`
	Coverage           []CoverageRow      `json:"coverage_by_threshold"`
	SignalDistribution map[string]float64 `json:"signal_distribution,omitempty"`
}

// Compute turns a labeled truth table into calibration statistics.
// Fails with ErrInsufficientData on an empty table: statistics over zero
// rows are meaningless and must not silently propagate.
func Compute(rows []TruthTableRow, bins int) (*Computed, error) {
	if len(rows) == 0 {
		return nil, common.NewAppError("CALIBRATION_EMPTY", "truth table has no usable rows", common.ErrInsufficientData)
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	// Scale detection: any raw value above 1.5 means the table was exported
	// on a 0-100 scale.
	scale := ScaleZeroOne
	for _, r := range rows {
		if r.PredictedConfidence > 1.5 {
			scale = ScaleZeroHundred
			break
		}
	}

	n := len(rows)
	preds := make([]float64, n)
	outcomes := make([]float64, n)
	for i, r := range rows {
		p := r.PredictedConfidence
		if scale == ScaleZeroHundred {
			p /= 100
		}
		preds[i] = clamp01(p)
		if r.Correct >= 0.5 {
			outcomes[i] = 1
		}
	}

	c := &Computed{
		NRows: n,
		Scale: scale,
		Bins:  make([]ReliabilityBin, bins),
	}

	var accSum, brierSum float64
	for i := range preds {
		accSum += outcomes[i]
		d := preds[i] - outcomes[i]
		brierSum += d * d
	}
	c.Accuracy = accSum / float64(n)
	c.Brier = brierSum / float64(n)

	// Per-field accuracy over rows that carry the column; omitted entirely
	// when no row does.
	fieldSum := map[string]float64{}
	fieldCount := map[string]int{}
	for _, r := range rows {
		for field, v := range r.FieldCorrect {
			if v >= 0.5 {
				fieldSum[field]++
			}
			fieldCount[field]++
		}
	}
	if len(fieldCount) > 0 {
		c.FieldAccuracy = make(map[string]float64, len(fieldCount))
		for field, cnt := range fieldCount {
			c.FieldAccuracy[field] = fieldSum[field] / float64(cnt)
		}
	}

	// Reliability bins + ECE.
	width := 1.0 / float64(bins)
	for b := range c.Bins {
		c.Bins[b].Min = float64(b) * width
		c.Bins[b].Max = float64(b+1) * width
	}
	binPredSum := make([]float64, bins)
	binAccSum := make([]float64, bins)
	for i := range preds {
		b := int(preds[i] * float64(bins))
		if b >= bins { // 1.0 lands in the closed last bin
			b = bins - 1
		}
		c.Bins[b].Count++
		binPredSum[b] += preds[i]
		binAccSum[b] += outcomes[i]
	}
	for b := range c.Bins {
		if c.Bins[b].Count == 0 {
			continue
		}
		cnt := float64(c.Bins[b].Count)
		c.Bins[b].AvgPredicted = binPredSum[b] / cnt
		c.Bins[b].EmpiricalAccuracy = binAccSum[b] / cnt
		c.ECE += (cnt / float64(n)) * math.Abs(c.Bins[b].AvgPredicted-c.Bins[b].EmpiricalAccuracy)
	}

	// Coverage per fixed candidate threshold.
	c.Coverage = make([]CoverageRow, 0, len(CandidateThresholds))
	for _, t := range CandidateThresholds {
		var covered, correct float64
		for i := range preds {
			if preds[i] >= t {
				covered++
				correct += outcomes[i]
			}
		}
		row := CoverageRow{Threshold: t}
		if covered > 0 {
			row.AutoRate = covered / float64(n)
			row.ExpectedErrorRate = 1 - correct/covered
		}
		c.Coverage = append(c.Coverage, row)
	}

	// Signal distribution over rows that provide each indicator.
	sigSum := map[string]float64{}
	sigCount := map[string]int{}
	for _, r := range rows {
		for sig, v := range r.Signals {
			sigSum[sig] += v
			sigCount[sig]++
		}
	}
	if len(sigCount) > 0 {
		c.SignalDistribution = make(map[string]float64, len(sigCount))
		for sig, cnt := range sigCount {
			c.SignalDistribution[sig] = sigSum[sig] / float64(cnt)
		}
	}

	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

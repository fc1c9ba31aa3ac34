package calibration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcormier/po-intake/internal/calibration"
	"github.com/pcormier/po-intake/internal/common"
)

func row(conf, correct float64) calibration.TruthTableRow {
	return calibration.TruthTableRow{PredictedConfidence: conf, Correct: correct}
}

func TestComputeScaleDetection(t *testing.T) {
	tests := []struct {
		name      string
		rows      []calibration.TruthTableRow
		wantScale string
	}{
		{
			name:      "all values at or below 1.5 read as 0-1",
			rows:      []calibration.TruthTableRow{row(0.9, 1), row(1.0, 1), row(1.5, 0)},
			wantScale: calibration.ScaleZeroOne,
		},
		{
			name:      "any value above 1.5 flips to 0-100",
			rows:      []calibration.TruthTableRow{row(0.9, 1), row(90, 1)},
			wantScale: calibration.ScaleZeroHundred,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := calibration.Compute(tt.rows, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScale, c.Scale)
		})
	}
}

func TestComputeNormalizesAndClamps(t *testing.T) {
	// 0-100 scale with an out-of-range value; 150/100 clamps to 1.0.
	c, err := calibration.Compute([]calibration.TruthTableRow{row(150, 1), row(50, 0)}, 10)
	require.NoError(t, err)
	assert.Equal(t, calibration.ScaleZeroHundred, c.Scale)

	// clamped 1.0 lands in the closed last bin
	last := c.Bins[len(c.Bins)-1]
	assert.Equal(t, 1, last.Count)
	assert.InDelta(t, 1.0, last.AvgPredicted, 1e-9)
}

func TestComputeEmptyFailsLoudly(t *testing.T) {
	_, err := calibration.Compute(nil, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInsufficientData)
}

func TestComputeECEBoundsAndBinPartition(t *testing.T) {
	rows := []calibration.TruthTableRow{
		row(0.05, 0), row(0.15, 0), row(0.35, 1), row(0.55, 1),
		row(0.72, 0), row(0.85, 1), row(0.91, 1), row(0.97, 1),
		row(1.0, 1), row(0.0, 0),
	}
	c, err := calibration.Compute(rows, 10)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, c.ECE, 0.0)
	assert.LessOrEqual(t, c.ECE, 1.0)

	total := 0
	prevMax := 0.0
	for _, b := range c.Bins {
		total += b.Count
		assert.InDelta(t, prevMax, b.Min, 1e-9, "bins must partition [0,1] without gaps")
		prevMax = b.Max
	}
	assert.InDelta(t, 1.0, prevMax, 1e-9)
	assert.Equal(t, c.NRows, total, "bin counts must sum to n_rows")
}

func TestComputeBrier(t *testing.T) {
	// one perfect, one maximally wrong: brier = (0 + 1) / 2
	c, err := calibration.Compute([]calibration.TruthTableRow{row(1.0, 1), row(1.0, 0)}, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.Brier, 1e-9)
}

func TestCoverageMonotonicity(t *testing.T) {
	rows := []calibration.TruthTableRow{
		row(0.5, 1), row(0.62, 0), row(0.74, 1), row(0.81, 1),
		row(0.86, 0), row(0.9, 1), row(0.93, 1), row(0.96, 0), row(0.99, 1),
	}
	c, err := calibration.Compute(rows, 10)
	require.NoError(t, err)
	require.Len(t, c.Coverage, len(calibration.CandidateThresholds))

	prev := 2.0
	for _, cov := range c.Coverage {
		assert.LessOrEqual(t, cov.AutoRate, prev, "auto_rate must be non-increasing at threshold %.2f", cov.Threshold)
		prev = cov.AutoRate
	}
}

func TestCoverageEmptyThresholdIsZero(t *testing.T) {
	c, err := calibration.Compute([]calibration.TruthTableRow{row(0.4, 1)}, 10)
	require.NoError(t, err)
	for _, cov := range c.Coverage {
		if cov.Threshold > 0.4 {
			assert.Zero(t, cov.AutoRate)
			assert.Zero(t, cov.ExpectedErrorRate)
		}
	}
}

func TestComputePerFieldAccuracyOmittedWhenAbsent(t *testing.T) {
	c, err := calibration.Compute([]calibration.TruthTableRow{row(0.9, 1)}, 10)
	require.NoError(t, err)
	assert.Nil(t, c.FieldAccuracy)

	withFields := []calibration.TruthTableRow{
		{PredictedConfidence: 0.9, Correct: 1, FieldCorrect: map[string]float64{"quantity": 1}},
		{PredictedConfidence: 0.8, Correct: 1, FieldCorrect: map[string]float64{"quantity": 0}},
	}
	c, err = calibration.Compute(withFields, 10)
	require.NoError(t, err)
	require.NotNil(t, c.FieldAccuracy)
	assert.InDelta(t, 0.5, c.FieldAccuracy["quantity"], 1e-9)
}

func TestComputeSignalDistribution(t *testing.T) {
	rows := []calibration.TruthTableRow{
		{PredictedConfidence: 0.9, Correct: 1, Signals: map[string]float64{"ZERO_DOLLAR": 1}},
		{PredictedConfidence: 0.8, Correct: 1, Signals: map[string]float64{"ZERO_DOLLAR": 0}},
		{PredictedConfidence: 0.7, Correct: 0, Signals: map[string]float64{"ZERO_DOLLAR": 1}},
	}
	c, err := calibration.Compute(rows, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, c.SignalDistribution["ZERO_DOLLAR"], 1e-9)
}

// End-to-end scenario: 90 rows at 0.9+ all correct, 10 rows at 0.6 half
// correct.
func TestCalibrationEndToEnd(t *testing.T) {
	var rows []calibration.TruthTableRow
	for i := 0; i < 90; i++ {
		rows = append(rows, row(0.9, 1))
	}
	for i := 0; i < 10; i++ {
		correct := 0.0
		if i < 5 {
			correct = 1
		}
		rows = append(rows, row(0.6, correct))
	}

	c, err := calibration.Compute(rows, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, c.Accuracy, 1e-9)

	var at90 calibration.CoverageRow
	for _, cov := range c.Coverage {
		if cov.Threshold == 0.9 {
			at90 = cov
		}
	}
	assert.InDelta(t, 0.90, at90.AutoRate, 1e-9)
	assert.InDelta(t, 0.0, at90.ExpectedErrorRate, 1e-9)

	gates := calibration.SuggestGates(c.Coverage, 0.02)
	assert.InDelta(t, 0.9, gates.AutoStageMin, 1e-9)
}

func TestParseTruthCSV(t *testing.T) {
	csv := strings.Join([]string{
		"Line_Correct,Predicted_Confidence,item_number_correct,has_zero_dollar",
		"1,0.95,1,0",
		"true,88%,0,1",
		"0,not-a-number,1,0", // dropped: unparseable confidence
		",0.70,1,0",          // dropped: missing correctness
		"no,0.55,,",
	}, "\n")

	rows, err := calibration.ParseTruthCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.InDelta(t, 0.95, rows[0].PredictedConfidence, 1e-9)
	assert.InDelta(t, 1.0, rows[0].Correct, 1e-9)
	assert.InDelta(t, 88, rows[1].PredictedConfidence, 1e-9)
	assert.InDelta(t, 1.0, rows[1].FieldCorrect["item_number"], 1e-9)
	assert.InDelta(t, 1.0, rows[1].Signals["ZERO_DOLLAR"], 1e-9)
	assert.InDelta(t, 0.0, rows[2].Correct, 1e-9)
}

func TestCoerceTruthTableNoUsableColumns(t *testing.T) {
	rows := calibration.CoerceTruthTable([]string{"foo", "bar"}, [][]string{{"1", "2"}})
	assert.Nil(t, rows)
}

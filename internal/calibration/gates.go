package calibration

import "github.com/pcormier/po-intake/internal/entity"

// DefaultMaxError is the default tolerable expected error rate among
// auto-processed rows.
const DefaultMaxError = 0.02

const (
	fallbackAutoMin = 0.95
	reviewGap       = 0.15
	reviewCeiling   = 0.85

	// blockFloor is fixed rather than calibrated: the block gate must never
	// be auto-suggested above a safety ceiling, no matter what the truth
	// table says.
	blockFloor = 0.50
)

// SuggestGates picks policy gates from a coverage table under a maximum
// tolerable error rate. Among thresholds meeting the bound with non-zero
// coverage it picks the lowest, maximizing auto coverage.
func SuggestGates(coverage []CoverageRow, maxError float64) entity.PolicyGates {
	if maxError <= 0 {
		maxError = DefaultMaxError
	}

	auto := fallbackAutoMin
	for _, row := range coverage {
		if row.AutoRate > 0 && row.ExpectedErrorRate <= maxError {
			auto = row.Threshold
			break
		}
	}

	review := auto - reviewGap
	if review > reviewCeiling {
		review = reviewCeiling
	}
	if review < 0 {
		review = 0
	}

	return entity.PolicyGates{
		AutoStageMin: auto,
		ReviewMin:    review,
		BlockBelow:   blockFloor,
	}
}

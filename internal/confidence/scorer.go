package confidence

import (
	"github.com/pcormier/po-intake/constants"
	"github.com/pcormier/po-intake/internal/entity"
)

// Field keys in the per-field confidence map.
const (
	FieldItemNumber    = "item_number"
	FieldQuantity      = "quantity"
	FieldUnitPrice     = "unit_price"
	FieldExtendedPrice = "extended_price"
	FieldUOM           = "uom"
	FieldDescription   = "description"
)

// Weights is the penalty table subtracted from a row's base confidence.
// Named and overridable so tests can isolate with synthetic weights; the
// defaults are the production values.
type Weights struct {
	MissingItemNumber    float64
	MissingQuantity      float64
	MissingUnitPrice     float64 // applied only when pricing is expected
	MissingExtendedPrice float64 // applied only when pricing is expected
	MissingUOM           float64
	MissingDescription   float64

	SpecialLayoutDescription   float64
	CustomDimensionDescription float64
	CustomDimensionItemNumber  float64
	RGADescription             float64
	ZeroDollarPrice            float64 // both price fields, pricing-expected only

	ReviewThreshold float64
}

// DefaultWeights returns the production penalty table.
func DefaultWeights() Weights {
	return Weights{
		MissingItemNumber:    0.25,
		MissingQuantity:      0.25,
		MissingUnitPrice:     0.15,
		MissingExtendedPrice: 0.10,
		MissingUOM:           0.10,
		MissingDescription:   0.10,

		SpecialLayoutDescription:   0.15,
		CustomDimensionDescription: 0.10,
		CustomDimensionItemNumber:  0.05,
		RGADescription:             0.15,
		ZeroDollarPrice:            0.20,

		ReviewThreshold: 0.85,
	}
}

// ComputeFieldConfidence derives per-field confidence from the row's base
// line confidence, structural-missing penalties, and edge-case penalties.
// Each field is clamped independently: a penalty on one field never bleeds
// into another, isolating risk to the fields an edge case actually
// threatens.
func ComputeFieldConfidence(row *entity.POLineRow, w Weights) map[string]float64 {
	base := clamp01(row.Confidence)
	pricingExpected := row.DocType.PricingExpected()

	fc := map[string]float64{
		FieldItemNumber:    base,
		FieldQuantity:      base,
		FieldUnitPrice:     base,
		FieldExtendedPrice: base,
		FieldUOM:           base,
		FieldDescription:   base,
	}

	if strMissing(row.ItemNumber) {
		fc[FieldItemNumber] -= w.MissingItemNumber
	}
	if row.Quantity == nil {
		fc[FieldQuantity] -= w.MissingQuantity
	}
	if pricingExpected && row.UnitPrice == nil {
		fc[FieldUnitPrice] -= w.MissingUnitPrice
	}
	if pricingExpected && row.ExtendedPrice == nil {
		fc[FieldExtendedPrice] -= w.MissingExtendedPrice
	}
	if strMissing(row.UOM) {
		fc[FieldUOM] -= w.MissingUOM
	}
	if strMissing(row.Description) {
		fc[FieldDescription] -= w.MissingDescription
	}

	for _, flag := range row.Flags {
		switch flag {
		case constants.FlagSpecialLayout:
			fc[FieldDescription] -= w.SpecialLayoutDescription
		case constants.FlagCustomDimension:
			fc[FieldDescription] -= w.CustomDimensionDescription
			fc[FieldItemNumber] -= w.CustomDimensionItemNumber
		case constants.FlagRGAReference:
			fc[FieldDescription] -= w.RGADescription
		case constants.FlagZeroDollar:
			if pricingExpected {
				fc[FieldUnitPrice] -= w.ZeroDollarPrice
				fc[FieldExtendedPrice] -= w.ZeroDollarPrice
			}
		}
	}

	for k, v := range fc {
		fc[k] = clamp01(v)
	}
	return fc
}

// FieldsNeedingReview returns every field whose confidence fell strictly
// below the threshold.
func FieldsNeedingReview(fc map[string]float64, threshold float64) []string {
	var out []string
	for field, conf := range fc {
		if conf < threshold {
			out = append(out, field)
		}
	}
	return out
}

func strMissing(s *string) bool {
	return s == nil || *s == ""
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

package entity

import (
	"github.com/pcormier/po-intake/constants"
)

// POLineRow is the unit the enrichment pipeline operates on: one extracted
// line item, created at extraction-mapping time and progressively enriched by
// the signal extractor, the field confidence scorer, and the policy router.
// Identity fields (DocID, DocType, LineNo) are set once and preserved by
// every stage.
type POLineRow struct {
	DocID   string            `json:"doc_id"`
	DocType constants.DocType `json:"doc_type"`
	LineNo  int               `json:"line_no"`

	ItemNumber       *string  `json:"item_number,omitempty"`
	VendorItemNumber *string  `json:"vendor_item_number,omitempty"`
	Description      *string  `json:"description,omitempty"`
	RawText          string   `json:"raw_text"`
	Quantity         *float64 `json:"quantity,omitempty"`
	UOM              *string  `json:"uom,omitempty"`
	UnitPrice        *float64 `json:"unit_price,omitempty"`
	ExtendedPrice    *float64 `json:"extended_price,omitempty"`
	Manufacturer     *string  `json:"manufacturer,omitempty"`
	Finish           *string  `json:"finish,omitempty"`
	Category         *string  `json:"category,omitempty"`

	ItemClass   constants.ItemClass `json:"item_class"`
	Flags       []string            `json:"flags,omitempty"`
	Notes       []string            `json:"notes,omitempty"`
	CutToInches *float64            `json:"cut_to_inches,omitempty"`
	RGANumber   *string             `json:"rga_no,omitempty"`
	InvoiceRef  *string             `json:"invoice_ref,omitempty"`
	Confidence  float64             `json:"confidence"`

	// Routing outputs, assigned by the policy router before export.
	AutomationLane      constants.Lane     `json:"automation_lane,omitempty"`
	RoutingReason       string             `json:"routing_reason,omitempty"`
	Violations          []string           `json:"violations,omitempty"`
	FieldConfidence     map[string]float64 `json:"field_confidence,omitempty"`
	FieldsNeedingReview []string           `json:"fields_requiring_review,omitempty"`
}

// Clone returns a deep copy so that enrichment stages can be pure Row -> Row
// transformations without aliasing slices or maps across stages.
func (r POLineRow) Clone() POLineRow {
	out := r
	out.Flags = append([]string(nil), r.Flags...)
	out.Notes = append([]string(nil), r.Notes...)
	out.Violations = append([]string(nil), r.Violations...)
	out.FieldsNeedingReview = append([]string(nil), r.FieldsNeedingReview...)
	if r.FieldConfidence != nil {
		out.FieldConfidence = make(map[string]float64, len(r.FieldConfidence))
		for k, v := range r.FieldConfidence {
			out.FieldConfidence[k] = v
		}
	}
	return out
}

// HasFlag reports whether a named edge-case flag is present on the row.
func (r *POLineRow) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

package entity

// ExtractedDocument is the structured output of the external extraction
// collaborator for one logical document. Optional members are pointers:
// absence means "not extracted", never zero. The core validates presence
// before use and treats absence as ungrounded.
type ExtractedDocument struct {
	DocID       string  `json:"doc_id"`
	DocType     string  `json:"doc_type,omitempty"`
	PageStart   *int    `json:"page_start,omitempty"`
	PageEnd     *int    `json:"page_end,omitempty"`
	OrderNumber *string `json:"order_number,omitempty"`
	OrderDate   *string `json:"order_date,omitempty"` // YYYY-MM-DD
	SoldTo      *string `json:"sold_to,omitempty"`
	ShipTo      *string `json:"ship_to,omitempty"`
	Vendor      *string `json:"vendor,omitempty"`
	FullText    string  `json:"full_text,omitempty"`

	Lines []ExtractedLine `json:"lines"`
}

// ExtractedLine is one raw line item as extracted, before enrichment.
type ExtractedLine struct {
	LineNo           int      `json:"line_no"`
	RawText          string   `json:"raw_text"`
	ItemNumber       *string  `json:"item_number,omitempty"`
	VendorItemNumber *string  `json:"vendor_item_number,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	UOM              *string  `json:"uom,omitempty"`
	UnitPrice        *float64 `json:"unit_price,omitempty"`
	ExtendedPrice    *float64 `json:"extended_price,omitempty"`
	Manufacturer     *string  `json:"manufacturer,omitempty"`
	Finish           *string  `json:"finish,omitempty"`
	Category         *string  `json:"category,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"` // 0..1
	Flags            []string `json:"flags,omitempty"`
}

// PageCount derives the page span when both bounds are present.
func (d *ExtractedDocument) PageCount() int {
	if d.PageStart == nil || d.PageEnd == nil {
		return 0
	}
	n := *d.PageEnd - *d.PageStart + 1
	if n < 0 {
		return 0
	}
	return n
}

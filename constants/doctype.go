package constants

import "strings"

// DocType is the canonical classification of a logical document (or a page
// before segmentation) inside an uploaded packet.
type DocType string

// Stable values (store these exact strings).
const (
	DocTypeCreditMemo    DocType = "CREDIT_MEMO"
	DocTypeInvoice       DocType = "INVOICE"
	DocTypePurchaseOrder DocType = "PURCHASE_ORDER"
	DocTypeSalesOrder    DocType = "SALES_ORDER"
	DocTypePickingSheet  DocType = "PICKING_SHEET"
	DocTypeEmailCover    DocType = "EMAIL_COVER"
	DocTypeUnknown       DocType = "UNKNOWN"
)

var allDocTypes = []DocType{
	DocTypeCreditMemo,
	DocTypeInvoice,
	DocTypePurchaseOrder,
	DocTypeSalesOrder,
	DocTypePickingSheet,
	DocTypeEmailCover,
	DocTypeUnknown,
}

// DocTypeStrings returns all document types as plain strings.
func DocTypeStrings() []string {
	result := make([]string, len(allDocTypes))
	for i, dt := range allDocTypes {
		result[i] = string(dt)
	}
	return result
}

// ParseDocType maps a raw string onto a canonical DocType, tolerating case
// and surrounding whitespace. Unrecognized input maps to UNKNOWN.
func ParseDocType(input string) (DocType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	for _, dt := range allDocTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return DocTypeUnknown, false
}

// PricingExpected reports whether commercial pricing fields are required on
// line items of this document type. Picking sheets and email covers carry no
// prices by design.
func (d DocType) PricingExpected() bool {
	switch d {
	case DocTypePickingSheet, DocTypeEmailCover:
		return false
	default:
		return true
	}
}

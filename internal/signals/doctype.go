package signals

import (
	"strings"

	"github.com/pcormier/po-intake/constants"
)

// Label/text keywords checked in fixed priority order. A page mentioning
// both "credit memo" and "purchase order" is a credit memo.
var docTypeChecks = []struct {
	keyword string
	docType constants.DocType
}{
	{"credit", constants.DocTypeCreditMemo},
	{"invoice", constants.DocTypeInvoice},
	{"purchase", constants.DocTypePurchaseOrder},
	{"sales", constants.DocTypeSalesOrder},
	{"picking", constants.DocTypePickingSheet},
	{"email", constants.DocTypeEmailCover},
}

// InferDocType resolves a document type from the extraction model's label,
// falling back to keyword search over the raw text blob. The model label is
// sometimes missing or malformed, so the text heuristics are a deliberately
// weaker second tier.
func InferDocType(modelLabel, fullText string) constants.DocType {
	label := strings.ToLower(strings.TrimSpace(modelLabel))
	if label != "" {
		for _, check := range docTypeChecks {
			if strings.Contains(label, check.keyword) {
				return check.docType
			}
		}
	}

	text := strings.ToLower(fullText)
	if text == "" {
		return constants.DocTypeUnknown
	}
	for _, check := range docTypeChecks {
		if check.docType == constants.DocTypeEmailCover {
			continue // handled below, needs both markers
		}
		if strings.Contains(text, check.keyword) {
			return check.docType
		}
	}
	if strings.Contains(text, "from:") && strings.Contains(text, "subject:") {
		return constants.DocTypeEmailCover
	}
	return constants.DocTypeUnknown
}

package pipeline

import (
	"log/slog"

	"github.com/pcormier/po-intake/constants"
	"github.com/pcormier/po-intake/internal/catalog"
	"github.com/pcormier/po-intake/internal/confidence"
	"github.com/pcormier/po-intake/internal/entity"
	"github.com/pcormier/po-intake/internal/extract"
	"github.com/pcormier/po-intake/internal/routing"
	"github.com/pcormier/po-intake/internal/signals"
)

// Stage is one pure Row -> Row enrichment transformation. Stages compose in
// a fixed documented order because each depends on fields written by the
// previous one: signal extraction, then field confidence, then routing.
type Stage func(entity.POLineRow) entity.POLineRow

// Processor coordinates the per-document enrichment pipeline.
type Processor struct {
	Logger  *slog.Logger
	Weights confidence.Weights
	Lookup  catalog.Lookup
	Policy  entity.PolicyConfig
}

func NewProcessor(logger *slog.Logger, lookup catalog.Lookup, policy entity.PolicyConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:  logger,
		Weights: confidence.DefaultWeights(),
		Lookup:  lookup,
		Policy:  policy,
	}
}

// neutralConfidence is assumed when the extractor returned no line
// confidence at all.
const neutralConfidence = 0.5

// mapLine creates the initial row from one extracted line. Identity fields
// are fixed here and preserved by every later stage.
func mapLine(docID string, docType constants.DocType, line entity.ExtractedLine) entity.POLineRow {
	row := entity.POLineRow{
		DocID:            docID,
		DocType:          docType,
		LineNo:           line.LineNo,
		RawText:          line.RawText,
		ItemNumber:       line.ItemNumber,
		VendorItemNumber: line.VendorItemNumber,
		Description:      line.Description,
		Quantity:         line.Quantity,
		UOM:              line.UOM,
		UnitPrice:        line.UnitPrice,
		ExtendedPrice:    line.ExtendedPrice,
		Manufacturer:     line.Manufacturer,
		Finish:           line.Finish,
		Category:         line.Category,
		ItemClass:        constants.ItemClassCatalog,
		Flags:            append([]string(nil), line.Flags...),
		Confidence:       neutralConfidence,
	}
	if line.Confidence != nil {
		row.Confidence = *line.Confidence
	}
	return row
}

// SignalStage runs edge-case detection over the row's raw text and derives
// the item class.
func SignalStage(row entity.POLineRow) entity.POLineRow {
	out := row.Clone()
	sig := signals.ExtractLineSignals(out.RawText)
	out.Flags = append(out.Flags, sig.Flags...)
	out.Notes = append(out.Notes, sig.Notes...)
	out.CutToInches = sig.CutToInches
	out.RGANumber = sig.RGANumber
	out.InvoiceRef = sig.InvoiceRef

	zero := signals.ClassifyZeroDollar(out.Quantity, out.UnitPrice, out.ExtendedPrice)
	if zero && out.DocType.PricingExpected() && !out.HasFlag(constants.FlagZeroDollar) {
		out.Flags = append(out.Flags, constants.FlagZeroDollar)
	}
	out.ItemClass = signals.DeriveItemClass(out.ItemClass, out.Flags, zero)
	return out
}

// ConfidenceStage computes per-field confidence and the review field list.
func (p *Processor) ConfidenceStage(row entity.POLineRow) entity.POLineRow {
	out := row.Clone()
	out.FieldConfidence = confidence.ComputeFieldConfidence(&out, p.Weights)
	out.FieldsNeedingReview = confidence.FieldsNeedingReview(out.FieldConfidence, p.Weights.ReviewThreshold)
	return out
}

// RouteStage assigns the automation lane via the grounding lookup.
func (p *Processor) RouteStage(row entity.POLineRow) entity.POLineRow {
	return routing.RouteRow(row, p.Lookup)
}

// ProcessDocument runs the full enrichment pipeline over one extracted
// document and reconciles the document decision.
func (p *Processor) ProcessDocument(doc entity.ExtractedDocument) routing.RoutedDocument {
	docType := signals.InferDocType(doc.DocType, doc.FullText)

	stages := []Stage{SignalStage, p.ConfidenceStage, p.RouteStage}
	rows := make([]entity.POLineRow, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		row := mapLine(doc.DocID, docType, line)
		for _, stage := range stages {
			row = stage(row)
		}
		rows = append(rows, row)
	}

	return routing.ReconcileDocument(doc.DocID, docType, rows, p.Policy.Gates, p.Policy.Exclusions, p.Logger)
}

// ProcessExtraction routes every document of an extraction result.
// Documents are processed sequentially; they share no mutable state, so
// callers may parallelize by document if they choose.
func (p *Processor) ProcessExtraction(res extract.ExtractionResult) []routing.RoutedDocument {
	out := make([]routing.RoutedDocument, 0, len(res.Docs))
	for _, doc := range res.Docs {
		routed := p.ProcessDocument(doc)
		p.Logger.Info("pipeline.document.routed",
			"doc_id", routed.DocID,
			"doc_type", routed.DocType,
			"decision", routed.Decision,
			"lines", len(routed.Rows),
		)
		out = append(out, routed)
	}
	return out
}

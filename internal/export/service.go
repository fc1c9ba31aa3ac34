package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pcormier/po-intake/internal/routing"
)

// Service produces XLSX bytes from routed documents for downstream review.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildLinesXLSX returns a workbook with one row per routed line item.
// Every row carries its lane; unrouted rows are a pipeline bug and rejected.
func (s *Service) BuildLinesXLSX(docs []routing.RoutedDocument) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Lines"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet excelize creates
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Document",
		"Doc Type",
		"Decision",
		"Line",
		"Item Number",
		"Description",
		"Qty",
		"UOM",
		"Unit Price",
		"Ext Price",
		"Manufacturer",
		"Finish",
		"Item Class",
		"Confidence",
		"Lane",
		"Routing Reason",
		"Fields Requiring Review",
		"Flags",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, doc := range docs {
		for _, line := range doc.Rows {
			if line.AutomationLane == "" {
				return nil, fmt.Errorf("doc %s line %d: no automation lane assigned", doc.DocID, line.LineNo)
			}

			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			write(1, doc.DocID)
			write(2, string(doc.DocType))
			write(3, string(doc.Decision))
			write(4, line.LineNo)
			write(5, strOrDash(line.ItemNumber))
			write(6, strOrDash(line.Description))
			if line.Quantity != nil {
				write(7, *line.Quantity)
			}
			write(8, strOrDash(line.UOM))
			if line.UnitPrice != nil {
				write(9, *line.UnitPrice)
			}
			if line.ExtendedPrice != nil {
				write(10, *line.ExtendedPrice)
			}
			write(11, strOrDash(line.Manufacturer))
			write(12, strOrDash(line.Finish))
			write(13, string(line.ItemClass))
			write(14, line.Confidence)
			write(15, string(line.AutomationLane))
			write(16, line.RoutingReason)
			write(17, strings.Join(line.FieldsNeedingReview, ", "))
			write(18, strings.Join(line.Flags, ", "))
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.lines.built",
		"docs", len(docs),
		"rows", row-2,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func strOrDash(p *string) string {
	if p == nil || *p == "" {
		return "—"
	}
	return *p
}

package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcormier/po-intake/constants"
	"github.com/pcormier/po-intake/internal/catalog"
	"github.com/pcormier/po-intake/internal/entity"
	"github.com/pcormier/po-intake/internal/routing"
)

func str(s string) *string { return &s }

func testCatalog() *catalog.Catalog {
	return catalog.New("2026-01", []catalog.Entry{
		{Kind: catalog.KindManufacturer, Canonical: "Hager", Aliases: []string{"Hager Companies"}},
		{Kind: catalog.KindManufacturer, Canonical: "Von Duprin"},
		{Kind: catalog.KindFinish, Canonical: "US26D", Aliases: []string{"626", "Satin Chrome"}},
		{Kind: catalog.KindCategory, Canonical: "Hinges"},
		{Kind: catalog.KindCategory, Canonical: "Exit Devices"},
	})
}

func groundedRow() entity.POLineRow {
	return entity.POLineRow{
		DocID:        "doc-1",
		DocType:      constants.DocTypePurchaseOrder,
		LineNo:       1,
		Manufacturer: str("Hager"),
		Finish:       str("US26D"),
		Category:     str("Hinges"),
	}
}

func TestRouteRowFullyGrounded(t *testing.T) {
	out := routing.RouteRow(groundedRow(), testCatalog())

	assert.Equal(t, constants.LaneAuto, out.AutomationLane)
	assert.Empty(t, out.Violations)
	assert.InDelta(t, 1.0, out.Confidence, 1e-9) // 0.4+0.2+0.2+0.2
}

func TestRouteRowEmailCoverHardGuard(t *testing.T) {
	// even a perfectly grounded row blocks on an email cover page
	row := groundedRow()
	row.DocType = constants.DocTypeEmailCover
	row.Confidence = 1.0

	out := routing.RouteRow(row, testCatalog())
	assert.Equal(t, constants.LaneBlock, out.AutomationLane)
	assert.Contains(t, out.RoutingReason, "email cover")
}

func TestRouteRowViolationCounts(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*entity.POLineRow)
		wantLane constants.Lane
		wantConf float64
		wantViol []string
	}{
		{
			name:     "one miss routes to assist",
			mutate:   func(r *entity.POLineRow) { r.Finish = str("weathered brass") },
			wantLane: constants.LaneAssist,
			wantConf: 0.8, // 0.4+0.2+0.2
			wantViol: []string{routing.ViolationNoFinishMatch},
		},
		{
			name: "two misses route to assist",
			mutate: func(r *entity.POLineRow) {
				r.Finish = nil
				r.Category = nil
			},
			wantLane: constants.LaneAssist,
			wantConf: 0.6,
			wantViol: []string{routing.ViolationNoFinishMatch, routing.ViolationNoCategoryMatch},
		},
		{
			name: "three misses block",
			mutate: func(r *entity.POLineRow) {
				r.Manufacturer = nil
				r.Finish = nil
				r.Category = nil
			},
			wantLane: constants.LaneBlock,
			wantConf: 0.2, // flat extraction-trust floor only
			wantViol: []string{routing.ViolationNoMfrMatch, routing.ViolationNoFinishMatch, routing.ViolationNoCategoryMatch},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := groundedRow()
			tt.mutate(&row)
			out := routing.RouteRow(row, testCatalog())

			assert.Equal(t, tt.wantLane, out.AutomationLane)
			assert.InDelta(t, tt.wantConf, out.Confidence, 1e-9)
			assert.Equal(t, tt.wantViol, out.Violations)
		})
	}
}

func TestRouteRowAliasAndContainmentGrounding(t *testing.T) {
	row := groundedRow()
	row.Manufacturer = str("HAGER COMPANIES")
	row.Finish = str("626")

	out := routing.RouteRow(row, testCatalog())
	require.Empty(t, out.Violations)
	assert.Equal(t, "Hager", *out.Manufacturer, "grounded fields are canonicalized")
	assert.Equal(t, "US26D", *out.Finish)
}

func TestRouteRowPickingSheetHint(t *testing.T) {
	row := groundedRow()
	row.DocType = constants.DocTypePickingSheet

	out := routing.RouteRow(row, testCatalog())
	assert.Equal(t, constants.LaneAuto, out.AutomationLane, "hints never change the lane math")
	assert.Contains(t, out.RoutingReason, "no pricing expected")
}

func TestRouteRowDoesNotMutateInput(t *testing.T) {
	row := groundedRow()
	row.Finish = str("nope")
	_ = routing.RouteRow(row, testCatalog())
	assert.Empty(t, row.Violations)
	assert.Empty(t, row.AutomationLane)
}

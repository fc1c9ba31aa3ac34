package routing

import (
	"strings"

	"github.com/pcormier/po-intake/constants"
	"github.com/pcormier/po-intake/internal/catalog"
	"github.com/pcormier/po-intake/internal/entity"
)

// Named violations appended when a grounding check fails.
const (
	ViolationNoMfrMatch      = "No Mfr Match"
	ViolationNoFinishMatch   = "No Finish Match"
	ViolationNoCategoryMatch = "No Category Match"
)

// Grounding score contributions. The flat floor represents baseline trust in
// the extraction itself, independent of grounding.
const (
	mfrWeight      = 0.4
	finishWeight   = 0.2
	categoryWeight = 0.2
	baseFloor      = 0.2

	readyConfidenceMin = 0.8
	blockViolationMax  = 2 // more than this many violations blocks the row
)

const emailCoverReason = "email cover pages never yield exportable line items"

// RouteRow assigns an automation lane to one enriched row. Pure aside from
// synchronous reads of the grounding lookup; the input row is not mutated.
//
// The EMAIL_COVER guard is a policy invariant evaluated before any scoring:
// confidence can never argue a cover page into export.
func RouteRow(row entity.POLineRow, lookup catalog.Lookup) entity.POLineRow {
	out := row.Clone()

	if out.DocType == constants.DocTypeEmailCover {
		out.AutomationLane = constants.LaneBlock
		out.RoutingReason = emailCoverReason
		return out
	}

	score := 0.0
	var violations []string

	if canonical, ok := matchField(lookup, catalog.KindManufacturer, out.Manufacturer); ok {
		score += mfrWeight
		out.Manufacturer = &canonical
	} else {
		violations = append(violations, ViolationNoMfrMatch)
	}
	if canonical, ok := matchField(lookup, catalog.KindFinish, out.Finish); ok {
		score += finishWeight
		out.Finish = &canonical
	} else {
		violations = append(violations, ViolationNoFinishMatch)
	}
	if canonical, ok := matchField(lookup, catalog.KindCategory, out.Category); ok {
		score += categoryWeight
		out.Category = &canonical
	} else {
		violations = append(violations, ViolationNoCategoryMatch)
	}

	conf := score + baseFloor
	if conf > 1 {
		conf = 1
	}
	out.Confidence = conf
	out.Violations = violations

	ready := len(violations) == 0 && conf >= readyConfidenceMin
	switch {
	case ready:
		out.AutomationLane = constants.LaneAuto
		out.RoutingReason = "grounded and high confidence"
	case len(violations) > blockViolationMax:
		out.AutomationLane = constants.LaneBlock
		out.RoutingReason = "ungrounded: " + strings.Join(violations, "; ")
	default:
		out.AutomationLane = constants.LaneAssist
		out.RoutingReason = "needs assist: " + strings.Join(violations, "; ")
	}

	// Document-type hints are informational only; they never change the
	// lane math.
	if !out.DocType.PricingExpected() {
		out.RoutingReason += " (no pricing expected for " + string(out.DocType) + ")"
	}
	return out
}

// matchField grounds an optional extracted field. Absence is ungrounded,
// never an empty-string match.
func matchField(lookup catalog.Lookup, kind catalog.Kind, value *string) (string, bool) {
	if lookup == nil || value == nil || *value == "" {
		return "", false
	}
	return lookup.Match(kind, *value)
}

package routing

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/pcormier/po-intake/constants"
	"github.com/pcormier/po-intake/internal/entity"
)

// RoutedDocument is the document-level outcome after reconciling all row
// lanes, applying threshold degradation, and layering exclusion overrides.
type RoutedDocument struct {
	DocID             string                `json:"doc_id"`
	DocType           constants.DocType     `json:"doc_type"`
	Decision          constants.DocDecision `json:"decision"`
	ReasonCodes       []string              `json:"reason_codes"`
	Rows              []entity.POLineRow    `json:"rows"`
	AppliedExclusions []string              `json:"applied_exclusions,omitempty"`
}

// ReconcileDocument combines routed rows into a document decision.
// The initial decision from lane reconciliation is only ever downgraded by
// the gate checks; strictness is monotonic.
func ReconcileDocument(docID string, docType constants.DocType, rows []entity.POLineRow, gates entity.PolicyGates, exclusions map[string]entity.ExclusionRule, logger *slog.Logger) RoutedDocument {
	if logger == nil {
		logger = slog.Default()
	}

	doc := RoutedDocument{
		DocID:   docID,
		DocType: docType,
		Rows:    rows,
	}

	allAuto := len(rows) > 0
	anyBlock := false
	for _, r := range rows {
		if r.AutomationLane != constants.LaneAuto {
			allAuto = false
		}
		if r.AutomationLane == constants.LaneBlock {
			anyBlock = true
		}
	}
	switch {
	case anyBlock:
		doc.Decision = constants.DecisionHumanRequired
	case allAuto:
		doc.Decision = constants.DecisionAutoStage
	default:
		doc.Decision = constants.DecisionReview
	}

	// Threshold degradation: strictly downward, never back up.
	anyBelowAuto := false
	anyBelowReview := false
	for _, r := range rows {
		if r.Confidence < gates.AutoStageMin {
			anyBelowAuto = true
		}
		if r.Confidence < gates.ReviewMin {
			anyBelowReview = true
		}
	}
	if anyBelowAuto && doc.Decision == constants.DecisionAutoStage {
		doc.Decision = constants.DecisionReview
	}
	if anyBelowReview {
		doc.Decision = constants.DecisionHumanRequired
	}

	doc.ReasonCodes = deriveReasonCodes(rows, anyBelowAuto, anyBelowReview, anyBlock)

	doc = applyExclusions(doc, exclusions)

	logger.Info("router.document.decided",
		"doc_id", docID,
		"doc_type", docType,
		"decision", doc.Decision,
		"rows", len(rows),
		"reason_codes", doc.ReasonCodes,
	)
	return doc
}

// deriveReasonCodes explains a document decision. The set is never empty:
// an empty set is itself anomalous and surfaces as PARSING_ERROR.
func deriveReasonCodes(rows []entity.POLineRow, anyBelowAuto, anyBelowReview, anyBlock bool) []string {
	var codes []string
	seen := map[string]bool{}
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	if !anyBelowAuto && !anyBelowReview && len(rows) > 0 {
		add(constants.ReasonAllLinesHighConfidence)
	}
	if anyBelowAuto {
		add(constants.ReasonLowConfidenceFields)
	}

	policyMention := false
	for _, r := range rows {
		for _, flag := range r.Flags {
			switch {
			case strings.Contains(flag, "CREDIT"):
				add(constants.ReasonCreditMemoDetected)
			case strings.Contains(flag, "SPECIAL"):
				add(constants.ReasonSpecialLayoutDetected)
			case strings.Contains(flag, "CUSTOM"), strings.Contains(flag, "CUT"):
				add(constants.ReasonCustomDimension)
			case strings.Contains(flag, "ZERO"), strings.Contains(flag, "0.00"):
				add(constants.ReasonZeroDollarLine)
			case strings.Contains(flag, "THIRD"), strings.Contains(flag, "SHIP"), strings.Contains(flag, "MARK"):
				add(constants.ReasonThirdPartyShip)
			}
		}
		if strings.Contains(strings.ToLower(r.RoutingReason), "policy") {
			policyMention = true
		}
	}
	if anyBlock || policyMention {
		add(constants.ReasonPolicyBlock)
	}

	if len(codes) == 0 {
		add(constants.ReasonParsingError)
	}
	return codes
}

// applyExclusions layers operator overrides on top of the computed decision.
// A matched rule always takes precedence over the computed outcome. Rules are
// evaluated in sorted key order and the most severe matched action wins, so
// conflicting rules resolve identically on every run.
func applyExclusions(doc RoutedDocument, exclusions map[string]entity.ExclusionRule) RoutedDocument {
	if len(exclusions) == 0 {
		return doc
	}
	present := map[string]bool{}
	for _, code := range doc.ReasonCodes {
		present[code] = true
	}

	keys := make([]string, 0, len(exclusions))
	for key := range exclusions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var winner *entity.ExclusionRule
	for _, key := range keys {
		rule := exclusions[key]
		if !rule.AppliesTo(doc.DocType) {
			continue
		}
		triggered := present[rule.ReasonCode]
		if !triggered && len(rule.TriggerKeywords) > 0 {
			triggered = keywordHit(doc.Rows, rule.TriggerKeywords)
		}
		if !triggered {
			continue
		}

		doc.AppliedExclusions = append(doc.AppliedExclusions, rule.ReasonCode)
		if winner == nil || actionSeverity(rule.Action) > actionSeverity(winner.Action) {
			r := rule
			winner = &r
		}
	}
	if winner == nil {
		return doc
	}

	switch winner.Action {
	case constants.ExclusionHumanReview:
		doc.Decision = constants.DecisionReview
	case constants.ExclusionManualProcess:
		doc.Decision = constants.DecisionHumanRequired
	case constants.ExclusionBlock:
		doc.Decision = constants.DecisionHumanRequired
		for i := range doc.Rows {
			doc.Rows[i].AutomationLane = constants.LaneBlock
			doc.Rows[i].RoutingReason = "policy exclusion " + winner.ReasonCode + ": " + doc.Rows[i].RoutingReason
		}
	}
	return doc
}

// actionSeverity orders exclusion actions for conflict resolution.
func actionSeverity(a constants.ExclusionAction) int {
	switch a {
	case constants.ExclusionBlock:
		return 3
	case constants.ExclusionManualProcess:
		return 2
	case constants.ExclusionHumanReview:
		return 1
	}
	return 0
}

func keywordHit(rows []entity.POLineRow, keywords []string) bool {
	for _, r := range rows {
		text := strings.ToLower(r.RawText)
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

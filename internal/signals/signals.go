package signals

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pcormier/po-intake/constants"
)

var (
	reSpecialLayout = regexp.MustCompile(`(?i)special\s+layout`)
	rePowerTransfer = regexp.MustCompile(`(?i)power\s+transfer`)
	reWiringSpec    = regexp.MustCompile(`(?i)wired\s+for|wiring`)

	// CUT TO 107-1/4" or CUT TO 107 1/4" or CUT TO 96"
	reCutLength = regexp.MustCompile(`(?i)cut\s+to\s+(\d+)(?:[-\s](\d+)/(\d+))?\s*"`)

	// Reference labels need a 3+ char alphanumeric/hyphen token after them.
	reRGARef     = regexp.MustCompile(`(?i)\bRGA\b[#:\s]*([A-Za-z0-9-]{3,})`)
	reInvoiceRef = regexp.MustCompile(`(?i)\bINV(?:OICE)?\b[#:\s]*(?:NO\.?\s*)?([A-Za-z0-9-]{3,})`)
)

// LineSignals is the result of pattern-matching one line item's free text.
type LineSignals struct {
	Flags            []string
	Notes            []string
	RGANumber        *string
	InvoiceRef       *string
	CutToInches      *float64
	HasSpecialLayout bool
}

// ExtractLineSignals runs the fixed detector set over line-item text.
// Multiple flags can fire on the same text; the flags list preserves
// first-detected order and is not deduplicated here (dedup happens
// downstream at reason-code derivation).
func ExtractLineSignals(text string) LineSignals {
	var out LineSignals
	if text == "" {
		return out
	}

	if reSpecialLayout.MatchString(text) {
		out.Flags = append(out.Flags, constants.FlagSpecialLayout)
		out.HasSpecialLayout = true
		out.Notes = append(out.Notes, "special layout called out in line text")
	}
	if rePowerTransfer.MatchString(text) {
		out.Flags = append(out.Flags, constants.FlagPowerTransfer)
	}
	if reWiringSpec.MatchString(text) {
		out.Flags = append(out.Flags, constants.FlagWiringSpec)
	}

	if m := reCutLength.FindStringSubmatch(text); m != nil {
		inches := parseCutInches(m)
		out.CutToInches = &inches
		out.Flags = append(out.Flags, constants.FlagCustomDimension)
		out.Notes = append(out.Notes, fmt.Sprintf(`cut length %.2f"`, inches))
	}

	if m := reRGARef.FindStringSubmatch(text); m != nil {
		ref := m[1]
		out.RGANumber = &ref
		out.Flags = append(out.Flags, constants.FlagRGAReference)
		out.Notes = append(out.Notes, "RGA reference "+ref)
	}
	if m := reInvoiceRef.FindStringSubmatch(text); m != nil {
		ref := m[1]
		out.InvoiceRef = &ref
		out.Flags = append(out.Flags, constants.FlagInvoiceRef)
	}

	return out
}

// parseCutInches converts a matched cut phrase into decimal inches:
// whole plus numerator/denominator. A malformed fraction degrades to a zero
// contribution rather than failing the line.
func parseCutInches(m []string) float64 {
	whole, _ := strconv.ParseFloat(m[1], 64)
	if m[2] == "" || m[3] == "" {
		return whole
	}
	num, errN := strconv.ParseFloat(m[2], 64)
	den, errD := strconv.ParseFloat(m[3], 64)
	if errN != nil || errD != nil || den == 0 {
		return whole
	}
	return whole + num/den
}

// ClassifyZeroDollar flags the specific anomaly of a non-zero ordered
// quantity priced at exactly zero. Legitimately absent pricing (nil) on
// non-priced document types does not qualify.
func ClassifyZeroDollar(qty, unitPrice, extPrice *float64) bool {
	if qty == nil || *qty == 0 {
		return false
	}
	if unitPrice != nil && *unitPrice == 0 {
		return true
	}
	if extPrice != nil && *extPrice == 0 {
		return true
	}
	return false
}

// DeriveItemClass applies the escalation policy: CUSTOM-tier signals always
// win over CONFIGURED-tier ones regardless of count; absent both, the base
// classification stands. Strict two-tier override, not additive scoring.
func DeriveItemClass(base constants.ItemClass, flags []string, isZeroDollar bool) constants.ItemClass {
	custom := isZeroDollar
	configured := false
	for _, f := range flags {
		switch f {
		case constants.FlagSpecialLayout, constants.FlagCustomDimension, constants.FlagRGAReference, constants.FlagZeroDollar:
			custom = true
		case constants.FlagWiringSpec, constants.FlagPowerTransfer:
			configured = true
		}
	}
	if custom {
		return constants.ItemClassCustom
	}
	if configured {
		return constants.ItemClassConfigured
	}
	if base == "" {
		return constants.ItemClassUnknown
	}
	return base
}

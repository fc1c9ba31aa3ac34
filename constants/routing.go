package constants

// Lane is the automation disposition of a single line item.
type Lane string

const (
	LaneAuto   Lane = "AUTO"
	LaneAssist Lane = "ASSIST"
	LaneReview Lane = "REVIEW"
	LaneBlock  Lane = "BLOCK"
)

// DocDecision is the document-level routing outcome after reconciling all
// line lanes and applying threshold degradation.
type DocDecision string

const (
	DecisionAutoStage     DocDecision = "AUTO_STAGE"
	DecisionReview        DocDecision = "REVIEW"
	DecisionHumanRequired DocDecision = "HUMAN_REQUIRED"
)

// ItemClass ranks how much configuration risk a line item carries.
type ItemClass string

const (
	ItemClassCatalog    ItemClass = "CATALOG"
	ItemClassConfigured ItemClass = "CONFIGURED"
	ItemClassCustom     ItemClass = "CUSTOM"
	ItemClassUnknown    ItemClass = "UNKNOWN"
)

// Edge-case flag names attached to line rows by the signal extractor.
const (
	FlagSpecialLayout   = "SPECIAL_LAYOUT"
	FlagPowerTransfer   = "POWER_TRANSFER"
	FlagWiringSpec      = "WIRING_SPEC"
	FlagCustomDimension = "CUSTOM_DIMENSION"
	FlagRGAReference    = "RGA_REFERENCE"
	FlagInvoiceRef      = "INVOICE_REFERENCE"
	FlagZeroDollar      = "ZERO_DOLLAR"
)

// Document-level reason codes emitted by the router.
const (
	ReasonAllLinesHighConfidence = "ALL_LINES_HIGH_CONFIDENCE"
	ReasonLowConfidenceFields    = "LOW_CONFIDENCE_FIELDS_PRESENT"
	ReasonCreditMemoDetected     = "CREDIT_MEMO_DETECTED"
	ReasonSpecialLayoutDetected  = "SPECIAL_LAYOUT_DETECTED"
	ReasonCustomDimension        = "CUSTOM_DIMENSION_DETECTED"
	ReasonZeroDollarLine         = "ZERO_DOLLAR_LINE_DETECTED"
	ReasonThirdPartyShip         = "THIRD_PARTY_SHIP_DETECTED"
	ReasonPolicyBlock            = "POLICY_BLOCK"
	ReasonParsingError           = "PARSING_ERROR"
)

// ExclusionAction is the forced disposition of a matched exclusion rule.
type ExclusionAction string

const (
	ExclusionHumanReview   ExclusionAction = "HUMAN_REVIEW"
	ExclusionManualProcess ExclusionAction = "MANUAL_PROCESS"
	ExclusionBlock         ExclusionAction = "BLOCK"
)

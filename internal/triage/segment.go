package triage

import (
	"github.com/google/uuid"

	"github.com/pcormier/po-intake/constants"
)

// DocSegment is a contiguous run of pages sharing a label. Never mutated
// after construction.
type DocSegment struct {
	ID        string            `json:"id"`
	Label     constants.DocType `json:"label"`
	PageStart int               `json:"page_start"` // inclusive
	PageEnd   int               `json:"page_end"`   // inclusive
	Pages     []int             `json:"pages"`
	Triage    []PageTriage      `json:"triage"`
}

// BuildSegments merges adjacent triage entries into logical document
// segments with a greedy linear scan. UNKNOWN pages never merge with
// anything — each becomes its own singleton segment — trading
// over-segmentation for never silently concatenating unrelated content.
func BuildSegments(triage []PageTriage) []DocSegment {
	var segments []DocSegment
	var current *DocSegment

	flush := func() {
		if current != nil {
			segments = append(segments, *current)
			current = nil
		}
	}

	for _, pt := range triage {
		startNew := current == nil ||
			pt.Label != current.Label ||
			pt.Label == constants.DocTypeUnknown ||
			current.Label == constants.DocTypeUnknown
		if startNew {
			flush()
			current = &DocSegment{
				ID:        uuid.NewString(),
				Label:     pt.Label,
				PageStart: pt.PageIndex,
			}
		}
		current.PageEnd = pt.PageIndex
		current.Pages = append(current.Pages, pt.PageIndex)
		current.Triage = append(current.Triage, pt)
	}
	flush()
	return segments
}

package extract

import (
	"context"

	"github.com/pcormier/po-intake/internal/entity"
)

// ExtractionResult is the full structured output of one extraction call
// over one file (or one segment's image parts).
type ExtractionResult struct {
	Filename string                     `json:"filename,omitempty"`
	Docs     []entity.ExtractedDocument `json:"docs"`
}

// DocumentExtractor is the external LLM collaborator, treated as a black
// box returning a typed document-extraction result. The core never calls
// the model itself; callers wrap timeouts and rate limits around this.
type DocumentExtractor interface {
	ExtractDocuments(ctx context.Context, imageParts [][]byte, filenameHint string) (ExtractionResult, []byte /*rawJSON*/, error)
}

package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcormier/po-intake/internal/extract"
)

const validPayload = `{
  "filename": "packet.pdf",
  "docs": [
    {
      "doc_id": "d1",
      "doc_type": "PURCHASE_ORDER",
      "page_start": 0,
      "page_end": 1,
      "order_number": "PO-4471",
      "lines": [
        {
          "line_no": 1,
          "raw_text": "4 EA HINGE US26D",
          "quantity": 4,
          "uom": "EA",
          "unit_price": 112.5,
          "confidence": 0.92
        },
        {"line_no": 2, "raw_text": "1 EA CLOSER"}
      ]
    }
  ]
}`

func TestDecodeExtractionValid(t *testing.T) {
	res, err := extract.DecodeExtraction([]byte(validPayload))
	require.NoError(t, err)
	require.Len(t, res.Docs, 1)

	d := res.Docs[0]
	assert.Equal(t, "d1", d.DocID)
	require.NotNil(t, d.PageStart)
	assert.Equal(t, 0, *d.PageStart)
	require.Len(t, d.Lines, 2)

	// optional fields absent on the second line stay nil, never zero
	line := d.Lines[1]
	assert.Nil(t, line.Quantity)
	assert.Nil(t, line.UnitPrice)
	assert.Nil(t, line.Confidence)
	assert.Nil(t, line.Manufacturer)
}

func TestDecodeExtractionRejectsMissingDocID(t *testing.T) {
	payload := `{"docs": [{"lines": []}]}`
	_, err := extract.DecodeExtraction([]byte(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestDecodeExtractionRejectsUnknownKeys(t *testing.T) {
	payload := `{"docs": [], "surprise": true}`
	_, err := extract.DecodeExtraction([]byte(payload))
	require.Error(t, err)
}

func TestDecodeExtractionRejectsBadConfidence(t *testing.T) {
	payload := `{"docs": [{"doc_id": "d1", "lines": [{"line_no": 1, "raw_text": "x", "confidence": 1.4}]}]}`
	_, err := extract.DecodeExtraction([]byte(payload))
	require.Error(t, err)
}

func TestDecodeExtractionRejectsMalformedJSON(t *testing.T) {
	_, err := extract.DecodeExtraction([]byte(`{"docs": [`))
	require.Error(t, err)
}

func TestPageCount(t *testing.T) {
	res, err := extract.DecodeExtraction([]byte(validPayload))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Docs[0].PageCount())
}

package extract

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map describing the structured-document payload the extraction
// collaborator must return. Optional fields are genuinely optional: the
// pipeline treats absence as undefined, never as zero.
func BuildExtractionJSONSchema() map[string]any {
	lineProps := map[string]any{
		"line_no":            map[string]any{"type": "integer", "minimum": 0},
		"raw_text":           map[string]any{"type": "string"},
		"item_number":        map[string]any{"type": "string"},
		"vendor_item_number": map[string]any{"type": "string"},
		"description":        map[string]any{"type": "string"},
		"quantity":           map[string]any{"type": "number"},
		"uom":                map[string]any{"type": "string"},
		"unit_price":         map[string]any{"type": "number"},
		"extended_price":     map[string]any{"type": "number"},
		"manufacturer":       map[string]any{"type": "string"},
		"finish":             map[string]any{"type": "string"},
		"category":           map[string]any{"type": "string"},
		"confidence":         map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		"flags":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	}

	docProps := map[string]any{
		"doc_id":       map[string]any{"type": "string", "minLength": 1},
		"doc_type":     map[string]any{"type": "string"},
		"page_start":   map[string]any{"type": "integer", "minimum": 0},
		"page_end":     map[string]any{"type": "integer", "minimum": 0},
		"order_number": map[string]any{"type": "string"},
		"order_date":   map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"sold_to":      map[string]any{"type": "string"},
		"ship_to":      map[string]any{"type": "string"},
		"vendor":       map[string]any{"type": "string"},
		"full_text":    map[string]any{"type": "string"},
		"lines": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           lineProps,
				"required":             []string{"line_no", "raw_text"},
			},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"filename": map[string]any{"type": "string"},
			"docs": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           docProps,
					"required":             []string{"doc_id", "lines"},
				},
			},
		},
		"required": []string{"docs"},
	}
}

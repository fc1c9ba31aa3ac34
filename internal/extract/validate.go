package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// DecodeExtraction validates and decodes a raw extraction payload.
// Missing optional fields stay nil through the decode; upstream malformation
// of required structure is a hard error, never patched over.
func DecodeExtraction(raw []byte) (ExtractionResult, error) {
	if err := ValidateJSONAgainstSchema(BuildExtractionJSONSchema(), raw); err != nil {
		return ExtractionResult{}, fmt.Errorf("extraction payload: %w", err)
	}
	var res ExtractionResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return ExtractionResult{}, fmt.Errorf("extraction payload: decode: %w", err)
	}
	return res, nil
}

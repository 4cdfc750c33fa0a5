package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// EntriesSchema describes the payload shape models are asked to return.
// Entries may be empty; structural errors (wrong types, missing keys) are
// what this guards against before post-processing runs.
func EntriesSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entries": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject":    map[string]any{"type": "string"},
						"day":        map[string]any{"type": "string"},
						"start_time": map[string]any{"type": "string"},
						"end_time":   map[string]any{"type": "string"},
						"room":       map[string]any{"type": []any{"string", "null"}},
					},
					"required": []any{"subject", "day", "start_time", "end_time"},
				},
			},
			"confidence":  map[string]any{"type": "number"},
			"layout_type": map[string]any{"type": "string"},
			"notes":       map[string]any{"type": "string"},
			"error":       map[string]any{"type": "string"},
		},
	}
}

// ValidatePayload checks raw JSON against EntriesSchema.
func ValidatePayload(data []byte) error {
	return validateAgainstSchema(EntriesSchema(), data)
}

func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
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
		return fmt.Errorf("payload does not match schema: %w", err)
	}
	return nil
}

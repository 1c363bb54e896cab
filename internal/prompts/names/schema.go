package names

import (
	"encoding/json"

	"github.com/vedabase-tools/namamala/internal/providers"
	"github.com/vedabase-tools/namamala/internal/types"
)

// ExtractionSchema is the JSON schema for name extraction output.
// The record list is wrapped in an object because strict structured output
// requires an object root.
var ExtractionSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "beautiful_names",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"names": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name": map[string]any{
								"type":        "string",
								"description": "The beautiful Sanskrit name found, presented in the nominative case",
							},
							"definition": map[string]any{
								"type":        "string",
								"description": "The definition of the name",
							},
							"context": map[string]any{
								"type":        "string",
								"description": "Comprehensive information illuminating where this name comes from and how it is used",
							},
							"references": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"description": "Specific verse numbers or sections (e.g., 'SB 1.1.1, 1.1.12 Purport') pointing to this name",
							},
							"category": map[string]any{
								"type":        "string",
								"description": "The name criteria category (e.g., 'Names of Krishna', 'Qualities of Krishna's devotees')",
							},
							"gender": map[string]any{
								"type":        "string",
								"description": "Gender associated with the name: 'Male', 'Female', or 'Neutral'",
							},
						},
						"required":             []string{"name", "definition", "context", "references", "category", "gender"},
						"additionalProperties": false,
					},
					"description": "All extracted names in source order",
				},
			},
			"required":             []string{"names"},
			"additionalProperties": false,
		},
	},
}

// Result is the parsed structured output of one extraction round.
type Result struct {
	Names []types.NameRecord `json:"names"`
}

// ParseResult decodes a validated structured response.
func ParseResult(parsedJSON json.RawMessage) (*Result, error) {
	var result Result
	if err := json.Unmarshal(parsedJSON, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BuildResponseFormat returns the response format for extraction requests.
func BuildResponseFormat() *providers.ResponseFormat {
	jsonSchema, _ := json.Marshal(ExtractionSchema["json_schema"])
	return &providers.ResponseFormat{
		Type:       "json_schema",
		JSONSchema: jsonSchema,
	}
}

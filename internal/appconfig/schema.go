// internal/appconfig/schema.go
package appconfig

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// configSchema describes the shape of the JSON configuration file. Semantic
// checks that JSON Schema cannot express live in Config.Validate.
var configSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"ollamaUrl":       map[string]any{"type": "string"},
		"generationModel": map[string]any{"type": "string"},
		"embeddingModel":  map[string]any{"type": "string"},
		"dataDir":         map[string]any{"type": "string"},
		"indexDir":        map[string]any{"type": "string"},
		"chunkSize":       map[string]any{"type": "integer", "minimum": 1},
		"topK":            map[string]any{"type": "integer", "minimum": 1},
		"timeout":         map[string]any{"type": "integer", "minimum": 1},
		"extensions": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"logFile": map[string]any{"type": "string"},
		"debug":   map[string]any{"type": "boolean"},
	},
	"required": []string{"dataDir", "indexDir"},
}

// ValidateSchema validates raw config file bytes against the embedded schema.
func ValidateSchema(raw []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(issues, "; "))
}

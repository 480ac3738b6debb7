package persistence

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// FileSchema returns the JSON Schema of the file backend's format: an array
// of item records.
func FileSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	item := reflector.Reflect(&record{})
	item.Version = ""

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Inventory file",
		Description: "Full inventory snapshot. Duplicate names are allowed; the last record wins on load.",
		Type:        "array",
		Items:       item,
	}
}

// FileSchemaJSON renders FileSchema as indented JSON.
func FileSchemaJSON() ([]byte, error) {
	return json.MarshalIndent(FileSchema(), "", "  ")
}

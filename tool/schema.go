package tool

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaFromStruct derives a JSON schema map from a Go struct type, for use
// as a tool's input or output schema. Field names follow json tags and the
// jsonschema/description tags are honored, so argument containers double as
// schema declarations:
//
//	type WeatherInputs struct {
//		Location string `json:"location" jsonschema:"description=The location to get weather data for"`
//	}
//
//	def := tool.Definition{
//		Name:        "weather_retriever",
//		InputSchema: tool.SchemaFromStruct(WeatherInputs{}),
//	}
func SchemaFromStruct(v any) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	schema := reflector.Reflect(v)

	data, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}

	delete(m, "$schema")
	delete(m, "$id")
	if _, ok := m["type"]; !ok {
		m["type"] = "object"
	}

	return m
}

package browser

import "github.com/invopop/jsonschema"

// generateSchema mirrors the framework's schema reflection without importing
// the tools package (which imports this one).
func generateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

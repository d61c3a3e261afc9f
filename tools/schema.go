package tools

import (
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// schemaOptions makes byte slices travel as base64 strings, the way
// encoding/json marshals them
var schemaOptions = &jsonschema.ForOptions{
	TypeSchemas: map[reflect.Type]*jsonschema.Schema{
		reflect.TypeFor[[]byte](): {Type: "string", ContentEncoding: "base64"},
	},
}

package request

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	jsoniter "github.com/json-iterator/go"
)

// Encoder encodes a request body.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder decodes a response body into v, which is a pointer.
type Decoder interface {
	Decode(data []byte, v any) error
}

// JSONCodec is a JSON Encoder and Decoder. Requests built with a JSONCodec
// carry "Content-Type: application/json".
type JSONCodec struct {
	api       jsoniter.API
	snakeCase bool
}

var defaultJSON = NewJSON(true)

// JSON returns the default codec: struct fields without an explicit json
// name are encoded as snake_case keys and decoded from them.
func JSON() *JSONCodec {
	return defaultJSON
}

// NewJSON creates a JSON codec. With snakeCase false, field names follow
// encoding/json rules unchanged.
func NewJSON(snakeCase bool) *JSONCodec {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	if snakeCase {
		api.RegisterExtension(&snakeCaseExtension{})
	}
	return &JSONCodec{api: api, snakeCase: snakeCase}
}

// SnakeCase reports whether the codec converts field names.
func (c *JSONCodec) SnakeCase() bool { return c.snakeCase }

// Encode implements Encoder.
func (c *JSONCodec) Encode(v any) ([]byte, error) {
	return c.api.Marshal(v)
}

// Decode implements Decoder.
func (c *JSONCodec) Decode(data []byte, v any) error {
	return c.api.Unmarshal(data, v)
}

// IsJSON reports whether enc is a JSONCodec.
func IsJSON(enc Encoder) bool {
	_, ok := enc.(*JSONCodec)
	return ok
}

// snakeCaseExtension renames untagged exported fields to snake_case.
type snakeCaseExtension struct {
	jsoniter.DummyExtension
}

func (e *snakeCaseExtension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	for _, binding := range sd.Fields {
		name := binding.Field.Name()
		if name == "" || !unicode.IsUpper(rune(name[0])) {
			continue
		}
		if tag, ok := binding.Field.Tag().Lookup("json"); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName != "" {
				// explicitly named or hidden with "-"
				continue
			}
		}
		snake := strcase.ToSnake(name)
		binding.ToNames = []string{snake}
		binding.FromNames = []string{snake}
	}
}

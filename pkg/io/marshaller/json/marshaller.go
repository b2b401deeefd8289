// Package jsonmarshaller implements marshaller.Marshaller with indented JSON.
package jsonmarshaller

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/io/marshaller"
	jsoniter "github.com/json-iterator/go"
)

//nolint:gochecknoglobals // shared, stateless codecs
var (
	encoder = jsoniter.ConfigCompatibleWithStandardLibrary
	decoder = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		DisallowUnknownFields:  true,
	}.Froze()
)

// Marshaller is a JSON marshaller for models of type T.
type Marshaller[T any] struct{}

var _ marshaller.Marshaller[any] = (*Marshaller[any])(nil)

// NewMarshaller creates a JSON marshaller.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal encodes model as JSON indented by two spaces, with sorted map keys
// and a trailing newline.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	data, err := encoder.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// Indent the whole document so values with their own MarshalJSON are indented too.
	var out bytes.Buffer

	err = json.Indent(&out, data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to indent JSON: %w", err)
	}

	return out.String() + "\n", nil
}

// Unmarshal decodes JSON data into model. Unknown fields are rejected.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := decoder.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// UnmarshalString decodes JSON data into model.
func (m *Marshaller[T]) UnmarshalString(data string, model *T) error {
	return m.Unmarshal([]byte(data), model)
}

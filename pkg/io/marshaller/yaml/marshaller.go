// Package yamlmarshaller implements marshaller.Marshaller with YAML.
//
// Models are converted through JSON, so json struct tags apply and YAML
// numbers decode like JSON numbers. Unmarshalling is strict: unknown and
// duplicate fields are rejected.
package yamlmarshaller

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/io/marshaller"
	"sigs.k8s.io/yaml"
)

// Marshaller is a YAML marshaller for models of type T.
type Marshaller[T any] struct{}

var _ marshaller.Marshaller[any] = (*Marshaller[any])(nil)

// NewMarshaller creates a YAML marshaller.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal encodes model as YAML.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	data, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return string(data), nil
}

// Unmarshal decodes YAML or JSON data into model.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := yaml.UnmarshalStrict(data, model)
	if err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return nil
}

// UnmarshalString decodes YAML or JSON data into model.
func (m *Marshaller[T]) UnmarshalString(data string, model *T) error {
	return m.Unmarshal([]byte(data), model)
}

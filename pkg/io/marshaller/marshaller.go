// Package marshaller converts models to and from their textual encodings.
package marshaller

// Marshaller marshals models of type T to text and back.
type Marshaller[T any] interface {
	// Marshal encodes model.
	Marshal(model T) (string, error)
	// Unmarshal decodes data into model.
	Unmarshal(data []byte, model *T) error
	// UnmarshalString decodes data into model.
	UnmarshalString(data string, model *T) error
}

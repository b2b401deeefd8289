package helpers

import (
	"fmt"
	"io"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/fsutil"
	yamlmarshaller "github.com/devantler-tech/bergctl/pkg/io/marshaller/yaml"
	"github.com/devantler-tech/bergctl/pkg/utils/envvar"
	"github.com/spf13/cobra"
)

// StdinPath makes document loaders read from the command's input stream.
const StdinPath = "-"

// LoadDocument decodes the JSON or YAML document at path into a T after
// expanding ${VAR} and ${VAR:-fallback} placeholders. Unknown fields are
// rejected.
func LoadDocument[T any](cmd *cobra.Command, path string) (T, error) {
	var document T

	data, err := readDocument(cmd, path)
	if err != nil {
		return document, err
	}

	err = yamlmarshaller.NewMarshaller[T]().Unmarshal(envvar.ExpandBytes(data), &document)
	if err != nil {
		return document, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return document, nil
}

// LoadManifest loads a manifest. It is validated by the applier, not here.
func LoadManifest(cmd *cobra.Command, path string) (v1alpha1.Manifest, error) {
	return LoadDocument[v1alpha1.Manifest](cmd, path)
}

func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path != StdinPath {
		data, err := fsutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}

		return data, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	return data, nil
}

package fsutil

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyPath is returned when no file path is given.
var ErrEmptyPath = errors.New("file path is empty")

// ErrIsDirectory is returned when the path names a directory.
var ErrIsDirectory = errors.New("path is a directory")

// ReadFile reads the file at path after expanding it with ExpandHomePath.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	resolved, err := ExpandHomePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	//nolint:gosec // reading user-provided input files is the purpose of this helper
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Executor runs cobra commands and turns their failures into CommandErrors
// whose message is what cobra would have printed.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs cmd with ctx while capturing cobra's error stream. It returns
// nil on success, or a *CommandError holding the normalized error output and
// the original error.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}

// CommandError is a command failure with cobra's normalized error output.
type CommandError struct {
	message string
	cause   error
}

// Error returns the normalized output, followed by the cause when the output
// does not already contain it.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer cleans up cobra's error output.
type DefaultNormalizer struct{}

// Normalize trims whitespace and the "Error: " prefix of the first line.
// Following lines, such as usage hints, are kept.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	first, rest, multiline := strings.Cut(trimmed, "\n")
	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")

	if !multiline {
		return first
	}

	return first + "\n" + rest
}

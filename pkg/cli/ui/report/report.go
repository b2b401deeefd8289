// Package report renders reconciliation results in the configured output format.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	jsonmarshaller "github.com/devantler-tech/bergctl/pkg/io/marshaller/json"
	yamlmarshaller "github.com/devantler-tech/bergctl/pkg/io/marshaller/yaml"
	"github.com/devantler-tech/bergctl/pkg/svc/reconciler"
	"github.com/devantler-tech/bergctl/pkg/utils/notify"
)

// ErrUnsupportedValue is returned when a value has no text rendering.
var ErrUnsupportedValue = errors.New("unsupported value for text output")

// ReportedError marks an error whose failure document was already written.
type ReportedError struct {
	Err error
}

// Error implements the error interface.
func (e *ReportedError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the underlying cause.
func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err, or an error it wraps, was already written as a failure document.
func IsReported(err error) bool {
	var reported *ReportedError

	return errors.As(err, &reported)
}

// Write renders value to writer in format. Values are GroupResult,
// HostResult, reconciler.Report or Failure.
func Write(writer io.Writer, format v1alpha1.OutputFormat, value any) error {
	var (
		out string
		err error
	)

	switch format {
	case v1alpha1.OutputFormatYAML:
		out, err = yamlmarshaller.NewMarshaller[any]().Marshal(value)
	case v1alpha1.OutputFormatText:
		return writeText(writer, value)
	case v1alpha1.OutputFormatJSON, "":
		out, err = jsonmarshaller.NewMarshaller[any]().Marshal(value)
	default:
		return fmt.Errorf("%w: %q", v1alpha1.ErrInvalidOutputFormat, format)
	}

	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	_, err = io.WriteString(writer, out)
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}

// WriteFailure renders the failure document for cause and returns cause
// wrapped in a ReportedError. If rendering fails, both errors are returned.
func WriteFailure(writer io.Writer, format v1alpha1.OutputFormat, cause error) error {
	err := Write(writer, format, v1alpha1.NewFailure(cause))
	if err != nil {
		return errors.Join(cause, err)
	}

	return &ReportedError{Err: cause}
}

// --- text rendering ---

func writeText(writer io.Writer, value any) error {
	switch typed := value.(type) {
	case v1alpha1.GroupResult:
		writeGroup(writer, typed)
	case v1alpha1.HostResult:
		writeHost(writer, typed)
	case reconciler.Report:
		writeReport(writer, typed)
	case v1alpha1.Failure:
		notify.Errorf(writer, "%s", typed.Msg)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}

	return nil
}

func writeGroup(writer io.Writer, result v1alpha1.GroupResult) {
	writeResult(writer, result.Changed, fmt.Sprintf("group %s %s", result.Name, result.State), result.Params)
}

func writeHost(writer io.Writer, result v1alpha1.HostResult) {
	summary := fmt.Sprintf("host %s %s", result.UUID, result.State)
	if result.Installed {
		summary += ", installed"
	}

	writeResult(writer, result.Changed, summary, result.Params)
}

func writeResult(writer io.Writer, changed bool, summary string, params v1alpha1.Params) {
	write := notify.Infof
	if changed {
		write = notify.Successf
		summary += " (changed)"
	} else {
		summary += " (unchanged)"
	}

	if len(params) > 0 {
		body, err := yamlmarshaller.NewMarshaller[v1alpha1.Params]().Marshal(params)
		if err == nil {
			summary += "\n" + strings.TrimRight(body, "\n")
		}
	}

	write(writer, "%s", summary)
}

func writeReport(writer io.Writer, report reconciler.Report) {
	for _, result := range report.Groups {
		writeGroup(writer, result)
	}

	for _, result := range report.Hosts {
		writeHost(writer, result)
	}

	for _, failure := range report.Failed {
		notify.Errorf(writer, "%s %s: %s", strings.TrimSuffix(string(failure.Kind), "s"), failure.ID, failure.Msg)
	}

	changed := 0

	for _, result := range report.Groups {
		if result.Changed {
			changed++
		}
	}

	for _, result := range report.Hosts {
		if result.Changed {
			changed++
		}
	}

	unchanged := len(report.Groups) + len(report.Hosts) - changed
	if len(report.Failed) > 0 {
		notify.Warningf(writer, "%d changed, %d unchanged, %d failed", changed, unchanged, len(report.Failed))
	} else {
		notify.Activityf(writer, "%d changed, %d unchanged", changed, unchanged)
	}
}

package v1alpha1

import (
	"fmt"
	"strings"
)

// --- Enum Interface ---

// EnumValuer is implemented by string-based enum types to provide their valid values.
type EnumValuer interface {
	// ValidValues returns all valid string values for this enum type.
	ValidValues() []string
}

// --- Resource State ---

// ResourceState is the reported existence of a resource after reconciliation.
type ResourceState string

const (
	// ResourceStatePresent means the resource exists in Bergenholm.
	ResourceStatePresent ResourceState = "present"
	// ResourceStateAbsent means the resource does not exist in Bergenholm.
	ResourceStateAbsent ResourceState = "absent"
)

// --- Group State ---

// GroupState is the desired state of a group.
type GroupState string

const (
	// GroupStatePresent creates or updates the group.
	GroupStatePresent GroupState = "present"
	// GroupStateAbsent deletes the group.
	GroupStateAbsent GroupState = "absent"
)

// ValidGroupStates returns every supported group state.
func ValidGroupStates() []GroupState {
	return []GroupState{GroupStatePresent, GroupStateAbsent}
}

// Set for GroupState (pflag.Value interface).
func (s *GroupState) Set(value string) error {
	for _, state := range ValidGroupStates() {
		if strings.EqualFold(value, string(state)) {
			*s = state

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s)",
		ErrInvalidGroupState,
		value,
		strings.Join(s.ValidValues(), ", "),
	)
}

// String returns the string representation of the GroupState.
func (s *GroupState) String() string {
	return string(*s)
}

// Type returns the type of the GroupState.
func (s *GroupState) Type() string {
	return "GroupState"
}

// Default returns the default value for GroupState (present).
func (s *GroupState) Default() any {
	return GroupStatePresent
}

// ValidValues returns all valid GroupState values as strings.
func (s *GroupState) ValidValues() []string {
	return []string{string(GroupStatePresent), string(GroupStateAbsent)}
}

// IsValid reports whether the state is a known group state.
func (s GroupState) IsValid() bool {
	return s == GroupStatePresent || s == GroupStateAbsent
}

// --- Host State ---

// HostState is the desired state of a host. Besides existence it controls
// the installed marker kept in the host's groups list.
type HostState string

const (
	// HostStatePresent creates or updates the host and keeps its installed flag.
	HostStatePresent HostState = "present"
	// HostStateAbsent deletes the host.
	HostStateAbsent HostState = "absent"
	// HostStateInstalled ensures the host exists and is marked installed.
	HostStateInstalled HostState = "installed"
	// HostStateUninstalled ensures the host exists and is not marked installed.
	HostStateUninstalled HostState = "uninstalled"
)

// ValidHostStates returns every supported host state.
func ValidHostStates() []HostState {
	return []HostState{
		HostStatePresent,
		HostStateAbsent,
		HostStateInstalled,
		HostStateUninstalled,
	}
}

// Set for HostState (pflag.Value interface).
func (s *HostState) Set(value string) error {
	for _, state := range ValidHostStates() {
		if strings.EqualFold(value, string(state)) {
			*s = state

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s)",
		ErrInvalidHostState,
		value,
		strings.Join(s.ValidValues(), ", "),
	)
}

// String returns the string representation of the HostState.
func (s *HostState) String() string {
	return string(*s)
}

// Type returns the type of the HostState.
func (s *HostState) Type() string {
	return "HostState"
}

// Default returns the default value for HostState (present).
func (s *HostState) Default() any {
	return HostStatePresent
}

// ValidValues returns all valid HostState values as strings.
func (s *HostState) ValidValues() []string {
	values := make([]string, 0, len(ValidHostStates()))
	for _, state := range ValidHostStates() {
		values = append(values, string(state))
	}

	return values
}

// IsValid reports whether the state is a known host state.
func (s HostState) IsValid() bool {
	switch s {
	case HostStatePresent, HostStateAbsent, HostStateInstalled, HostStateUninstalled:
		return true
	default:
		return false
	}
}

// --- Output Format ---

// OutputFormat selects how results are written to stdout.
type OutputFormat string

const (
	// OutputFormatJSON writes results as indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML writes results as YAML.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatText writes human-readable notifications.
	OutputFormatText OutputFormat = "text"
)

// Set for OutputFormat (pflag.Value interface).
func (o *OutputFormat) Set(value string) error {
	for _, format := range []OutputFormat{OutputFormatJSON, OutputFormatYAML, OutputFormatText} {
		if strings.EqualFold(value, string(format)) {
			*o = format

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s)",
		ErrInvalidOutputFormat,
		value,
		strings.Join(o.ValidValues(), ", "),
	)
}

// String returns the string representation of the OutputFormat.
func (o *OutputFormat) String() string {
	return string(*o)
}

// Type returns the type of the OutputFormat.
func (o *OutputFormat) Type() string {
	return "OutputFormat"
}

// Default returns the default value for OutputFormat (json).
func (o *OutputFormat) Default() any {
	return OutputFormatJSON
}

// ValidValues returns all valid OutputFormat values as strings.
func (o *OutputFormat) ValidValues() []string {
	return []string{string(OutputFormatJSON), string(OutputFormatYAML), string(OutputFormatText)}
}

// IsValid reports whether the format is supported.
func (o OutputFormat) IsValid() bool {
	switch o {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatText:
		return true
	default:
		return false
	}
}

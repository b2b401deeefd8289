package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	yamlmarshaller "github.com/devantler-tech/bergctl/pkg/io/marshaller/yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// ParamsFlagName sets the whole parameter mapping.
	ParamsFlagName = "params"
	// ParamFlagName sets one top-level parameter.
	ParamFlagName = "param"
	// ArgsFileFlagName reads the structured input document from a file.
	ArgsFileFlagName = "args-file"
	// StateFlagName selects the desired state.
	StateFlagName = "state"
)

// ErrInvalidParams is returned when --params is not a JSON or YAML mapping.
var ErrInvalidParams = errors.New("invalid params")

// ErrInvalidParam is returned when a --param value is not of the form key=value.
var ErrInvalidParam = errors.New("invalid param, expected key=value")

// InputFlags holds the input flags shared by the group and host commands.
type InputFlags struct {
	Params   string
	Param    []string
	ArgsFile string
}

// AddFlags registers the input flags on flags.
func (f *InputFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.Params, ParamsFlagName, "", "Parameters as a JSON or YAML mapping")
	flags.StringArrayVar(
		&f.Param,
		ParamFlagName,
		nil,
		"Set one parameter as key=value; the value is parsed as YAML (repeatable)",
	)
	flags.StringVar(&f.ArgsFile, ArgsFileFlagName, "", "Read the input document from a JSON or YAML file (- for stdin)")
}

// ResolveParams returns the parameters to reconcile: the --params mapping
// when given, otherwise current unchanged so that stored parameters are kept.
func (f *InputFlags) ResolveParams(cmd *cobra.Command, current v1alpha1.Params) (v1alpha1.Params, error) {
	if !cmd.Flags().Changed(ParamsFlagName) {
		return current, nil
	}

	return ParseParams(f.Params)
}

// ResolveSet returns current with every --param assignment set on top. The
// reconciler applies these keys after it has read the resource, so --param
// without --params edits the stored mapping instead of replacing it.
func (f *InputFlags) ResolveSet(current v1alpha1.Params) (v1alpha1.Params, error) {
	if len(f.Param) == 0 {
		return current, nil
	}

	return ApplyParamAssignments(current, f.Param)
}

// ParseParams decodes a JSON or YAML mapping.
func ParseParams(raw string) (v1alpha1.Params, error) {
	var params v1alpha1.Params

	err := yamlmarshaller.NewMarshaller[v1alpha1.Params]().UnmarshalString(raw, &params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	if params == nil {
		return nil, fmt.Errorf("%w: expected a mapping", ErrInvalidParams)
	}

	return params, nil
}

// ApplyParamAssignments returns a copy of base with each key=value assignment
// set. Values are parsed as YAML, so "groups=[rhel7,centos]" sets a list and
// "cpus=2" a number. An empty value sets an empty string.
func ApplyParamAssignments(base v1alpha1.Params, assignments []string) (v1alpha1.Params, error) {
	params := base.DeepCopy()
	if params == nil {
		params = v1alpha1.Params{}
	}

	for _, assignment := range assignments {
		key, raw, found := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, assignment)
		}

		value, err := parseParamValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidParam, assignment, err)
		}

		params[key] = value
	}

	return params, nil
}

func parseParamValue(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	var value any

	err := yamlmarshaller.NewMarshaller[any]().UnmarshalString(raw, &value)
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Package host provides the host command, which reconciles one Bergenholm host.
package host

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/cli/helpers"
	"github.com/devantler-tech/bergctl/pkg/di"
	"github.com/devantler-tech/bergctl/pkg/svc/reconciler"
	"github.com/spf13/cobra"
)

const hostLongDesc = `Reconcile a Bergenholm host.

A host is installed when its "groups" parameter contains the "installed"
marker. The marker is managed through --state only and never appears in the
reported parameters:
  - present keeps the installed marker as it is
  - installed adds the marker
  - uninstalled removes the marker
  - absent deletes the host if it exists

Without --params or --param the stored parameters are kept.

The input is resolved in the following priority order:
  1. From the uuid argument and the --state, --params, --param and --url flags
  2. From --args-file (uuid, params, state, url, check)
  3. From configuration and defaults (state present)`

// NewHostCmd creates and returns the host command.
func NewHostCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var (
		state = v1alpha1.HostStatePresent
		input helpers.InputFlags
	)

	cmd := &cobra.Command{
		Use:   "host [uuid]",
		Short: "Reconcile a Bergenholm host",
		Long:  hostLongDesc,
		Example: `  bergctl host e9fe8fb3-c58c-43eb-a96d-88fb630d1ee7 --state installed \
    --params '{"hostname": "eval5", "ipaddr": "192.168.0.11"}'
  bergctl host e9fe8fb3-c58c-43eb-a96d-88fb630d1ee7 --state uninstalled
  bergctl host --args-file host.yaml --output yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Var(&state, helpers.StateFlagName, fmt.Sprintf("Desired state %v", state.ValidValues()))
	input.AddFlags(cmd.Flags())

	cmd.RunE = di.RunEWithRuntime(
		runtimeContainer,
		di.WithDeps(func(cmd *cobra.Command, _ di.Injector, deps di.Deps) error {
			return runHost(cmd, deps, state, &input)
		}),
	)

	return cmd
}

func runHost(cmd *cobra.Command, deps di.Deps, state v1alpha1.HostState, input *helpers.InputFlags) error {
	session, err := helpers.NewSession(cmd, deps)
	if err != nil {
		return helpers.Fail(cmd, nil, err)
	}

	in, err := resolveInput(cmd, session, state, input)
	if err != nil {
		return helpers.Fail(cmd, session, err)
	}

	client, err := session.Client(in.URL)
	if err != nil {
		return helpers.Fail(cmd, session, err)
	}

	r := reconciler.NewHostReconciler(client, false, deps.Logger.WithField("url", in.URL))

	result, err := r.Reconcile(cmd.Context(), in)
	if err != nil {
		return helpers.Fail(cmd, session, err)
	}

	return session.Write(cmd, result)
}

func resolveInput(
	cmd *cobra.Command,
	session *helpers.Session,
	state v1alpha1.HostState,
	input *helpers.InputFlags,
) (v1alpha1.HostInput, error) {
	var (
		in  v1alpha1.HostInput
		err error
	)

	if input.ArgsFile != "" {
		in, err = helpers.LoadDocument[v1alpha1.HostInput](cmd, input.ArgsFile)
		if err != nil {
			return v1alpha1.HostInput{}, err
		}
	}

	if args := cmd.Flags().Args(); len(args) > 0 {
		in.UUID = args[0]
	}

	if cmd.Flags().Changed(helpers.StateFlagName) {
		in.State = state
	}

	in.Params, err = input.ResolveParams(cmd, in.Params)
	if err != nil {
		return v1alpha1.HostInput{}, err
	}

	in.Set, err = input.ResolveSet(in.Set)
	if err != nil {
		return v1alpha1.HostInput{}, err
	}

	in.URL = session.ResolveURL(cmd, in.URL)
	in.Check = in.Check || session.Config.Check

	return in, nil
}

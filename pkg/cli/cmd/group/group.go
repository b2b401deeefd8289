// Package group provides the group command, which reconciles one Bergenholm group.
package group

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/cli/helpers"
	"github.com/devantler-tech/bergctl/pkg/di"
	"github.com/devantler-tech/bergctl/pkg/svc/reconciler"
	"github.com/spf13/cobra"
)

const groupLongDesc = `Reconcile a Bergenholm group.

With --state present the group is created, or updated when its stored
parameters differ. Without --params or --param the stored parameters are kept.
With --state absent the group is deleted if it exists.

The input is resolved in the following priority order:
  1. From the name argument and the --state, --params, --param and --url flags
  2. From --args-file (name, params, state, url, check)
  3. From configuration and defaults (state present)`

// NewGroupCmd creates and returns the group command.
func NewGroupCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var (
		state = v1alpha1.GroupStatePresent
		input helpers.InputFlags
	)

	cmd := &cobra.Command{
		Use:   "group [name]",
		Short: "Reconcile a Bergenholm group",
		Long:  groupLongDesc,
		Example: `  bergctl group centos7 --param mirror=http://mirror.example.com/centos
  bergctl group centos7 --state absent
  bergctl group --args-file group.yaml --check`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Var(&state, helpers.StateFlagName, fmt.Sprintf("Desired state %v", state.ValidValues()))
	input.AddFlags(cmd.Flags())

	cmd.RunE = di.RunEWithRuntime(
		runtimeContainer,
		di.WithDeps(func(cmd *cobra.Command, _ di.Injector, deps di.Deps) error {
			return runGroup(cmd, deps, state, &input)
		}),
	)

	return cmd
}

func runGroup(cmd *cobra.Command, deps di.Deps, state v1alpha1.GroupState, input *helpers.InputFlags) error {
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

	r := reconciler.NewGroupReconciler(client, false, deps.Logger.WithField("url", in.URL))

	result, err := r.Reconcile(cmd.Context(), in)
	if err != nil {
		return helpers.Fail(cmd, session, err)
	}

	return session.Write(cmd, result)
}

func resolveInput(
	cmd *cobra.Command,
	session *helpers.Session,
	state v1alpha1.GroupState,
	input *helpers.InputFlags,
) (v1alpha1.GroupInput, error) {
	var (
		in  v1alpha1.GroupInput
		err error
	)

	if input.ArgsFile != "" {
		in, err = helpers.LoadDocument[v1alpha1.GroupInput](cmd, input.ArgsFile)
		if err != nil {
			return v1alpha1.GroupInput{}, err
		}
	}

	if args := cmd.Flags().Args(); len(args) > 0 {
		in.Name = args[0]
	}

	if cmd.Flags().Changed(helpers.StateFlagName) {
		in.State = state
	}

	in.Params, err = input.ResolveParams(cmd, in.Params)
	if err != nil {
		return v1alpha1.GroupInput{}, err
	}

	in.Set, err = input.ResolveSet(in.Set)
	if err != nil {
		return v1alpha1.GroupInput{}, err
	}

	in.URL = session.ResolveURL(cmd, in.URL)
	in.Check = in.Check || session.Config.Check

	return in, nil
}

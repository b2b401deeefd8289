// Package apply provides the apply command, which reconciles every group and
// host declared in a manifest.
package apply

import (
	"errors"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/cli/helpers"
	"github.com/devantler-tech/bergctl/pkg/cli/ui/report"
	"github.com/devantler-tech/bergctl/pkg/di"
	"github.com/devantler-tech/bergctl/pkg/svc/reconciler"
	"github.com/spf13/cobra"
)

// ErrManifestRequired is returned when no manifest file is given.
var ErrManifestRequired = errors.New("manifest file is required (--file)")

const applyLongDesc = `Reconcile every group and host declared in a manifest.

Groups are reconciled before hosts, so hosts may reference groups created in
the same run. Items are reconciled in manifest order unless --parallel allows
more than one at a time.

The URL of each item is resolved in the following priority order:
  1. From the item's url field
  2. From the manifest's url field
  3. From --url, BERGCTL_URL or the config file

By default the first failure stops the run. With --keep-going every item is
reconciled and all failures are reported.

Example manifest:

  apiVersion: ` + v1alpha1.APIVersion + `
  kind: ` + v1alpha1.KindManifest + `
  groups:
    - name: centos7
      params:
        mirror: http://mirror.example.com/centos
  hosts:
    - uuid: e9fe8fb3-c58c-43eb-a96d-88fb630d1ee7
      state: installed
      params:
        hostname: eval5
        groups: [centos7]`

// NewApplyCmd creates and returns the apply command.
func NewApplyCmd(runtimeContainer *di.Runtime) *cobra.Command {
	var (
		file        string
		parallelism int
		keepGoing   bool
	)

	cmd := &cobra.Command{
		Use:           "apply",
		Short:         "Reconcile the groups and hosts of a manifest",
		Long:          applyLongDesc,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Manifest to apply as JSON or YAML (- for stdin)")
	cmd.Flags().IntVar(
		&parallelism,
		"parallel",
		v1alpha1.DefaultParallelism,
		"Maximum number of groups or hosts reconciled at once",
	)
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Reconcile every item even after a failure")

	cmd.RunE = di.RunEWithRuntime(
		runtimeContainer,
		di.WithDeps(func(cmd *cobra.Command, _ di.Injector, deps di.Deps) error {
			return runApply(cmd, deps, file, parallelism, keepGoing)
		}),
	)

	return cmd
}

func runApply(cmd *cobra.Command, deps di.Deps, file string, parallelism int, keepGoing bool) error {
	session, err := helpers.NewSession(cmd, deps)
	if err != nil {
		return helpers.Fail(cmd, nil, err)
	}

	if file == "" {
		return helpers.Fail(cmd, session, ErrManifestRequired)
	}

	manifest, err := helpers.LoadManifest(cmd, file)
	if err != nil {
		return helpers.Fail(cmd, session, err)
	}

	applier := &reconciler.Applier{
		Clients:         session.Client,
		DefaultURL:      session.Config.URL,
		DryRun:          session.Config.Check,
		Parallelism:     parallelism,
		ContinueOnError: keepGoing,
		Logger:          deps.Logger,
	}

	result, err := applier.Apply(cmd.Context(), manifest)
	if err != nil && len(result.Failed) == 0 {
		return helpers.Fail(cmd, session, err)
	}

	writeErr := session.Write(cmd, result)
	if writeErr != nil {
		return errors.Join(err, writeErr)
	}

	if err != nil {
		return &report.ReportedError{Err: err}
	}

	return nil
}

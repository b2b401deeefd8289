package cmd

import (
	"context"
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/cli/cmd/apply"
	"github.com/devantler-tech/bergctl/pkg/cli/cmd/group"
	"github.com/devantler-tech/bergctl/pkg/cli/cmd/host"
	"github.com/devantler-tech/bergctl/pkg/cli/helpers"
	"github.com/devantler-tech/bergctl/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/bergctl/pkg/di"
	configmanager "github.com/devantler-tech/bergctl/pkg/io/config-manager/bergctl"
	"github.com/spf13/cobra"
)

const rootLongDesc = `bergctl reconciles groups and hosts of a Bergenholm provisioning service.

Every command reads the current resource, decides on at most one write and
reports whether anything changed. Results are written to stdout as JSON, YAML
or text; diagnostics are logged to stderr.

Settings are resolved in the following priority order:
  1. From flags
  2. From BERGCTL_* environment variables (e.g. BERGCTL_URL)
  3. From bergctl.yaml in the working directory or ` + configmanager.UserConfigDir + `
  4. Built-in defaults`

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command with the given runtime, so
// that tests can inject their own dependencies.
func NewRootCmdWithRuntime(runtimeContainer *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bergctl",
		Short:        "bergctl reconciles Bergenholm groups and hosts",
		Long:         rootLongDesc,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	configmanager.AddFlags(cmd.PersistentFlags())

	// Invalid flag values are invocation errors and get a failure document.
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return helpers.Fail(cmd, nil, err)
	})

	cmd.AddCommand(group.NewGroupCmd(runtimeContainer))
	cmd.AddCommand(host.NewHostCmd(runtimeContainer))
	cmd.AddCommand(apply.NewApplyCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}

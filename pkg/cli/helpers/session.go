package helpers

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/cli/ui/report"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/devantler-tech/bergctl/pkg/di"
	configmanagerinterface "github.com/devantler-tech/bergctl/pkg/io/config-manager"
	configmanager "github.com/devantler-tech/bergctl/pkg/io/config-manager/bergctl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Session is the state of one command invocation: the loaded configuration
// and the injected collaborators.
type Session struct {
	Config  *v1alpha1.Config
	Logger  *logrus.Logger
	Factory bergenholm.Factory
}

// NewSession loads the configuration for cmd and applies its log level to
// the injected logger.
func NewSession(cmd *cobra.Command, deps di.Deps) (*Session, error) {
	manager := configmanager.NewConfigManager(deps.Logger)

	err := manager.BindFlags(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	config, err := manager.Load(configmanagerinterface.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	deps.Logger.SetLevel(level)

	if used := manager.ConfigFileUsed(); used != "" {
		deps.Logger.WithField("file", used).Debug("using config file")
	}

	return &Session{Config: config, Logger: deps.Logger, Factory: deps.Factory}, nil
}

// Client builds a Bergenholm client for baseURL with the configured timeout
// and read retries.
//
//nolint:ireturn // callers depend on the client interface
func (s *Session) Client(baseURL string) (bergenholm.Interface, error) {
	client, err := s.Factory.New(baseURL, bergenholm.Options{
		Timeout:     s.Config.Timeout,
		ReadRetries: s.Config.ReadRetries,
		Logger:      s.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// ResolveURL returns the URL to reconcile against: --url when given
// explicitly, then fromInput, then the configured URL.
func (s *Session) ResolveURL(cmd *cobra.Command, fromInput string) string {
	if fromInput != "" && !cmd.Flags().Changed(configmanager.KeyURL) {
		return fromInput
	}

	return s.Config.URL
}

// Write renders value to the command's output in the configured format.
func (s *Session) Write(cmd *cobra.Command, value any) error {
	err := report.Write(cmd.OutOrStdout(), s.Config.Output, value)
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return nil
}

// Fail writes the failure document for cause and returns the error the
// command should exit with. session is nil when the configuration could not
// be loaded; the --output flag is used then, falling back to JSON.
func Fail(cmd *cobra.Command, session *Session, cause error) error {
	if session != nil {
		return report.WriteFailure(cmd.OutOrStdout(), session.Config.Output, cause)
	}

	format := v1alpha1.OutputFormatJSON

	if flag := cmd.Flags().Lookup(configmanager.KeyOutput); flag != nil {
		var parsed v1alpha1.OutputFormat
		if parsed.Set(flag.Value.String()) == nil {
			format = parsed
		}
	}

	return report.WriteFailure(cmd.OutOrStdout(), format, cause)
}

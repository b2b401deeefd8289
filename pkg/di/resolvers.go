package di

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveLogger retrieves the logger dependency from the injector with consistent error handling.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveClientFactory retrieves the Bergenholm client factory dependency
// from the injector with consistent error handling.
//
//nolint:ireturn // container stores the interface type
func ResolveClientFactory(injector Injector) (bergenholm.Factory, error) {
	factory, err := do.Invoke[bergenholm.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve client factory dependency: %w", err)
	}

	return factory, nil
}

// Handler decorators.

// Deps groups the collaborators resolved for a command handler.
type Deps struct {
	Logger  *logrus.Logger
	Factory bergenholm.Factory
}

// WithDeps decorates a handler to automatically resolve the logger and the
// client factory.
func WithDeps(
	handler func(cmd *cobra.Command, injector Injector, deps Deps) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		logger, err := ResolveLogger(injector)
		if err != nil {
			return err
		}

		factory, err := ResolveClientFactory(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, Deps{Logger: logger, Factory: factory})
	}
}

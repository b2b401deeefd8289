package di

import (
	"os"

	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency providers.

// NewRuntime constructs the shared runtime container used by root command and tests.
// It registers default implementations for the logger and the Bergenholm client
// factory, followed by overrides.
func NewRuntime(overrides ...Module) *Runtime {
	return New(append([]Module{
		provideLogger,
		provideClientFactory,
	}, overrides...)...)
}

// provideLogger registers a logrus logger writing text to stderr.
func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (*logrus.Logger, error) {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

		return logger, nil
	})

	return nil
}

// provideClientFactory registers the Bergenholm client factory dependency.
func provideClientFactory(i Injector) error {
	do.Provide(i, func(Injector) (bergenholm.Factory, error) {
		return bergenholm.DefaultFactory{}, nil
	})

	return nil
}

// ClientFactoryModule overrides the Bergenholm client factory, typically
// with one backed by a test transport.
func ClientFactoryModule(factory bergenholm.Factory) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (bergenholm.Factory, error) {
			return factory, nil
		})

		return nil
	}
}

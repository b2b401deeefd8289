package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to command handlers.
type Injector = do.Injector

// Module registers dependencies with an injector.
type Module func(Injector) error

// Runtime holds the modules every command invocation starts from.
type Runtime struct {
	modules []Module
}

// New creates a runtime from base modules. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds a fresh injector from the base modules followed by extra,
// runs handler with it and shuts the injector down afterwards.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()
	defer injector.Shutdown()

	for _, module := range append(append([]Module(nil), r.modules...), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a dependency-aware handler to a cobra RunE function.
func RunEWithRuntime(
	runtimeContainer *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtimeContainer.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}

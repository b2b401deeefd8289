// Package configmanager loads the bergctl v1alpha1.Config from defaults, a
// config file, BERGCTL_* environment variables and command-line flags.
//
// This package shares the "configmanager" package name with its parent
// directory (pkg/io/config-manager). Import with an alias for clarity:
//
//	import bergctlconfigmanager "github.com/devantler-tech/bergctl/pkg/io/config-manager/bergctl"
package configmanager

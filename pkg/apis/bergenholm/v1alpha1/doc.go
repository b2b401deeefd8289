// Package v1alpha1 contains the bergctl data model: the parameter sets stored by
// Bergenholm, the desired states accepted for groups and hosts, the structured
// invocation inputs and results, batch manifests, and the CLI configuration.
package v1alpha1

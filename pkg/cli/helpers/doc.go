// Package helpers provides the plumbing shared by bergctl commands.
//
// Key functionality:
//   - Parsing --params and --param flags into v1alpha1.Params
//   - Loading args files and manifests as JSON or YAML
//   - Building a per-invocation Session from configuration and injected dependencies
//   - Writing results and failure documents in the configured output format
package helpers

// Package apis provides API type definitions for bergctl.
//
//   - bergenholm: Reconciler inputs and results, manifests and configuration
//
// The API types are designed to be serializable to JSON and YAML.
package apis

// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: The bergctl root command and its subcommands
//   - cli/helpers: Input parsing, document loading and per-invocation sessions
//   - cli/parallel: Parallel task execution with controlled concurrency
//   - cli/ui: User interface components (errorhandler, report)
//
// The utilities in this package follow dependency injection patterns and integrate
// with the bergctl runtime container for testability and flexibility.
package cli

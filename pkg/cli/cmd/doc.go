// Package cmd provides the command-line interface for bergctl.
//
// This package contains the root command and delegates to subcommand packages:
//   - group: Reconcile one Bergenholm group
//   - host: Reconcile one Bergenholm host, including its installed marker
//   - apply: Reconcile every group and host declared in a manifest
package cmd

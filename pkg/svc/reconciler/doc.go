// Package reconciler converges Bergenholm groups and hosts to a desired state.
//
// Every reconciliation reads the current resource once, decides one action
// (none, create, update or delete) and performs at most one write. Dry-run
// reconcilers perform the read and report the outcome without writing.
//
// The package provides:
//   - GroupReconciler and HostReconciler for single resources
//   - PlanGroup and PlanHost, the pure decision functions behind them
//   - Applier for manifests holding many groups and hosts
package reconciler

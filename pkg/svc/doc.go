// Package svc provides service layer components for bergctl.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the Bergenholm client.
//
// Subpackages:
//   - reconciler: Group and host reconcilers and manifest batch apply
package svc

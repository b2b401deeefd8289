package reconciler

import (
	"context"
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/sirupsen/logrus"
)

// HostReconciler converges Bergenholm hosts, including the installed marker
// in their groups list.
type HostReconciler struct {
	*Base
}

// NewHostReconciler creates a HostReconciler.
func NewHostReconciler(client bergenholm.Interface, dryRun bool, logger logrus.FieldLogger) *HostReconciler {
	return New(client, dryRun, logger, func(base *Base) *HostReconciler {
		return &HostReconciler{Base: base}
	})
}

// Reconcile reads the host, decides one action and performs it unless the
// reconciler or the input asks for a dry run. in is not modified.
func (r *HostReconciler) Reconcile(ctx context.Context, in v1alpha1.HostInput) (v1alpha1.HostResult, error) {
	in.ApplyDefaults()

	err := in.Validate()
	if err != nil {
		return v1alpha1.HostResult{}, err
	}

	current, err := r.read(ctx, bergenholm.KindHost, in.UUID)
	if err != nil {
		return v1alpha1.HostResult{}, err
	}

	current, err = splitSnapshot(current)
	if err != nil {
		return v1alpha1.HostResult{}, fmt.Errorf("host %s: %w", in.UUID, err)
	}

	plan, result, err := PlanHost(in, current)
	if err != nil {
		return v1alpha1.HostResult{}, err
	}

	err = r.execute(ctx, bergenholm.KindHost, in.UUID, plan, in.Check)
	if err != nil {
		return v1alpha1.HostResult{}, err
	}

	return result, nil
}

// splitSnapshot moves the installed marker of a stored host into
// Snapshot.Installed.
func splitSnapshot(current Snapshot) (Snapshot, error) {
	if !current.Exists {
		return current, nil
	}

	params, installed, err := current.Params.SplitInstalled()
	if err != nil {
		return Snapshot{}, fmt.Errorf("stored params: %w", err)
	}

	return Snapshot{Exists: true, Params: params, Installed: installed}, nil
}

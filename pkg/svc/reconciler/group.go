package reconciler

import (
	"context"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/sirupsen/logrus"
)

// GroupReconciler converges Bergenholm groups.
type GroupReconciler struct {
	*Base
}

// NewGroupReconciler creates a GroupReconciler.
func NewGroupReconciler(client bergenholm.Interface, dryRun bool, logger logrus.FieldLogger) *GroupReconciler {
	return New(client, dryRun, logger, func(base *Base) *GroupReconciler {
		return &GroupReconciler{Base: base}
	})
}

// Reconcile reads the group, decides one action and performs it unless the
// reconciler or the input asks for a dry run. in is not modified.
func (r *GroupReconciler) Reconcile(ctx context.Context, in v1alpha1.GroupInput) (v1alpha1.GroupResult, error) {
	in.ApplyDefaults()

	err := in.Validate()
	if err != nil {
		return v1alpha1.GroupResult{}, err
	}

	current, err := r.read(ctx, bergenholm.KindGroup, in.Name)
	if err != nil {
		return v1alpha1.GroupResult{}, err
	}

	plan, result := PlanGroup(in, current)

	err = r.execute(ctx, bergenholm.KindGroup, in.Name, plan, in.Check)
	if err != nil {
		return v1alpha1.GroupResult{}, err
	}

	return result, nil
}

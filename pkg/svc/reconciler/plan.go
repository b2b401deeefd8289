package reconciler

import (
	"fmt"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
)

// Action is the single write a reconciliation performs.
type Action int

const (
	// ActionNone leaves the resource untouched.
	ActionNone Action = iota
	// ActionCreate creates the resource with POST.
	ActionCreate
	// ActionUpdate replaces the resource with PUT.
	ActionUpdate
	// ActionDelete deletes the resource.
	ActionDelete
)

// String returns the lower-case verb of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Plan is the decided action and, for create and update, the body to send.
type Plan struct {
	Action  Action
	Payload v1alpha1.Params
}

// PlanGroup decides how to converge a group. Omitted params keep the stored
// ones, and in.Set overrides single keys of whichever mapping is used.
func PlanGroup(in v1alpha1.GroupInput, current Snapshot) (Plan, v1alpha1.GroupResult) {
	base := in.Params
	if base == nil {
		base = current.Params
	}

	desired := base.Merge(in.Set)

	switch {
	case current.Exists && in.State == v1alpha1.GroupStateAbsent:
		return Plan{Action: ActionDelete}, v1alpha1.GroupResult{
			Changed: true,
			Name:    in.Name,
			State:   v1alpha1.ResourceStateAbsent,
		}
	case current.Exists:
		result := v1alpha1.GroupResult{
			Name:   in.Name,
			State:  v1alpha1.ResourceStatePresent,
			Params: desired,
		}

		if current.Params.Equal(desired) {
			return Plan{Action: ActionNone}, result
		}

		result.Changed = true

		return Plan{Action: ActionUpdate, Payload: desired}, result
	case in.State == v1alpha1.GroupStateAbsent:
		return Plan{Action: ActionNone}, v1alpha1.GroupResult{
			Name:  in.Name,
			State: v1alpha1.ResourceStateAbsent,
		}
	default:
		if desired == nil {
			desired = v1alpha1.Params{}
		}

		return Plan{Action: ActionCreate, Payload: desired}, v1alpha1.GroupResult{
			Changed: true,
			Name:    in.Name,
			State:   v1alpha1.ResourceStatePresent,
			Params:  desired,
		}
	}
}

// PlanHost decides how to converge a host. current must already have the
// installed marker split off its params (see HostReconciler). The marker in
// in.Params is ignored; only in.State controls it.
//
//nolint:cyclop,funlen // one branch per (existence, state) pair
func PlanHost(in v1alpha1.HostInput, current Snapshot) (Plan, v1alpha1.HostResult, error) {
	base, source := in.Params, "params"
	if base == nil {
		base, source = current.Params, "stored params"
	}

	desired, _, err := base.Merge(in.Set).SplitInstalled()
	if err != nil {
		return Plan{}, v1alpha1.HostResult{}, fmt.Errorf("host %s %s: %w", in.UUID, source, err)
	}

	present := v1alpha1.HostResult{
		UUID:   in.UUID,
		State:  v1alpha1.ResourceStatePresent,
		Params: desired,
	}
	differs := !current.Params.Equal(desired)

	if !current.Exists {
		if in.State == v1alpha1.HostStateAbsent {
			return Plan{Action: ActionNone}, v1alpha1.HostResult{
				UUID:  in.UUID,
				State: v1alpha1.ResourceStateAbsent,
			}, nil
		}

		present.Changed = true
		present.Installed = in.State == v1alpha1.HostStateInstalled

		payload, payloadErr := hostPayload(desired, present.Installed)
		if payloadErr != nil {
			return Plan{}, v1alpha1.HostResult{}, payloadErr
		}

		return Plan{Action: ActionCreate, Payload: payload}, present, nil
	}

	switch in.State {
	case v1alpha1.HostStateAbsent:
		return Plan{Action: ActionDelete}, v1alpha1.HostResult{
			Changed: true,
			UUID:    in.UUID,
			State:   v1alpha1.ResourceStateAbsent,
		}, nil
	case v1alpha1.HostStateInstalled:
		present.Installed = true
		present.Changed = differs || !current.Installed
	case v1alpha1.HostStateUninstalled:
		present.Installed = false
		present.Changed = differs || current.Installed
	case v1alpha1.HostStatePresent:
		present.Installed = current.Installed
		present.Changed = differs
	default:
		return Plan{}, v1alpha1.HostResult{}, fmt.Errorf("%w: %q", v1alpha1.ErrInvalidHostState, in.State)
	}

	if !present.Changed {
		return Plan{Action: ActionNone}, present, nil
	}

	payload, err := hostPayload(desired, present.Installed)
	if err != nil {
		return Plan{}, v1alpha1.HostResult{}, err
	}

	return Plan{Action: ActionUpdate, Payload: payload}, present, nil
}

// hostPayload returns the body to send for a host: its params with the
// installed marker appended when the host is to be marked installed.
func hostPayload(params v1alpha1.Params, installed bool) (v1alpha1.Params, error) {
	if !installed {
		return params.DeepCopy(), nil
	}

	payload, err := params.WithInstalled()
	if err != nil {
		return nil, fmt.Errorf("mark host installed: %w", err)
	}

	return payload, nil
}

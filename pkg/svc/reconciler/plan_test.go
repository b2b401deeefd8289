package reconciler_test

import (
	"testing"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/svc/reconciler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", reconciler.ActionNone.String())
	assert.Equal(t, "create", reconciler.ActionCreate.String())
	assert.Equal(t, "update", reconciler.ActionUpdate.String())
	assert.Equal(t, "delete", reconciler.ActionDelete.String())
	assert.Equal(t, "action(9)", reconciler.Action(9).String())
}

func TestPlanGroup(t *testing.T) {
	t.Parallel()

	stored := v1alpha1.Params{"kernel": "vmlinuz", "cpus": float64(2)}

	tests := []struct {
		name        string
		in          v1alpha1.GroupInput
		current     reconciler.Snapshot
		wantAction  reconciler.Action
		wantPayload v1alpha1.Params
		wantResult  v1alpha1.GroupResult
	}{
		{
			name:       "missing and absent is a no-op",
			in:         v1alpha1.GroupInput{Name: "centos7", State: v1alpha1.GroupStateAbsent},
			wantAction: reconciler.ActionNone,
			wantResult: v1alpha1.GroupResult{Name: "centos7", State: v1alpha1.ResourceStateAbsent},
		},
		{
			name:        "missing and present creates with desired params",
			in:          v1alpha1.GroupInput{Name: "centos7", State: v1alpha1.GroupStatePresent, Params: stored},
			wantAction:  reconciler.ActionCreate,
			wantPayload: stored,
			wantResult: v1alpha1.GroupResult{
				Changed: true, Name: "centos7", State: v1alpha1.ResourceStatePresent, Params: stored,
			},
		},
		{
			name:        "missing and present without params creates an empty group",
			in:          v1alpha1.GroupInput{Name: "centos7", State: v1alpha1.GroupStatePresent},
			wantAction:  reconciler.ActionCreate,
			wantPayload: v1alpha1.Params{},
			wantResult: v1alpha1.GroupResult{
				Changed: true, Name: "centos7", State: v1alpha1.ResourceStatePresent, Params: v1alpha1.Params{},
			},
		},
		{
			name:       "existing and absent deletes",
			in:         v1alpha1.GroupInput{Name: "centos7", State: v1alpha1.GroupStateAbsent},
			current:    reconciler.Snapshot{Exists: true, Params: stored},
			wantAction: reconciler.ActionDelete,
			wantResult: v1alpha1.GroupResult{Changed: true, Name: "centos7", State: v1alpha1.ResourceStateAbsent},
		},
		{
			name: "existing and equal is a no-op",
			in: v1alpha1.GroupInput{
				Name: "centos7", State: v1alpha1.GroupStatePresent,
				Params: v1alpha1.Params{"cpus": 2, "kernel": "vmlinuz"},
			},
			current:    reconciler.Snapshot{Exists: true, Params: stored},
			wantAction: reconciler.ActionNone,
			wantResult: v1alpha1.GroupResult{
				Name: "centos7", State: v1alpha1.ResourceStatePresent,
				Params: v1alpha1.Params{"cpus": 2, "kernel": "vmlinuz"},
			},
		},
		{
			name:       "existing without desired params keeps stored ones",
			in:         v1alpha1.GroupInput{Name: "centos7", State: v1alpha1.GroupStatePresent},
			current:    reconciler.Snapshot{Exists: true, Params: stored},
			wantAction: reconciler.ActionNone,
			wantResult: v1alpha1.GroupResult{Name: "centos7", State: v1alpha1.ResourceStatePresent, Params: stored},
		},
		{
			name: "existing and different replaces",
			in: v1alpha1.GroupInput{
				Name: "centos7", State: v1alpha1.GroupStatePresent, Params: v1alpha1.Params{"kernel": "vmlinuz2"},
			},
			current:     reconciler.Snapshot{Exists: true, Params: stored},
			wantAction:  reconciler.ActionUpdate,
			wantPayload: v1alpha1.Params{"kernel": "vmlinuz2"},
			wantResult: v1alpha1.GroupResult{
				Changed: true, Name: "centos7", State: v1alpha1.ResourceStatePresent,
				Params: v1alpha1.Params{"kernel": "vmlinuz2"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			plan, result := reconciler.PlanGroup(tc.in, tc.current)

			assert.Equal(t, tc.wantAction, plan.Action)
			assert.True(t, tc.wantPayload.Equal(plan.Payload), "payload %v", plan.Payload)
			assert.Equal(t, tc.wantResult.Changed, result.Changed)
			assert.Equal(t, tc.wantResult.Name, result.Name)
			assert.Equal(t, tc.wantResult.State, result.State)
			assert.True(t, tc.wantResult.Params.Equal(result.Params), "params %v", result.Params)
		})
	}
}

func TestPlanGroup_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	desired := v1alpha1.Params{"kernel": "vmlinuz"}

	plan, _ := reconciler.PlanGroup(
		v1alpha1.GroupInput{Name: "centos7", State: v1alpha1.GroupStatePresent, Params: desired},
		reconciler.Snapshot{},
	)
	plan.Payload["kernel"] = "changed"

	assert.Equal(t, "vmlinuz", desired["kernel"])
}

//nolint:funlen // table of every (existence, state) pair
func TestPlanHost(t *testing.T) {
	t.Parallel()

	const uuid = "e9fe8fb3-c58c-43eb-a96d-88fb630d1ee7"

	desired := v1alpha1.Params{"hostname": "eval5", "groups": []any{"centos7"}}
	other := v1alpha1.Params{"hostname": "eval6", "groups": []any{"centos7"}}

	tests := []struct {
		name          string
		state         v1alpha1.HostState
		params        v1alpha1.Params
		current       reconciler.Snapshot
		wantAction    reconciler.Action
		wantPayload   v1alpha1.Params
		wantChanged   bool
		wantState     v1alpha1.ResourceState
		wantInstalled bool
	}{
		{
			name:       "missing and absent",
			state:      v1alpha1.HostStateAbsent,
			params:     desired,
			wantAction: reconciler.ActionNone,
			wantState:  v1alpha1.ResourceStateAbsent,
		},
		{
			name:        "missing and present",
			state:       v1alpha1.HostStatePresent,
			params:      desired,
			wantAction:  reconciler.ActionCreate,
			wantPayload: desired,
			wantChanged: true,
			wantState:   v1alpha1.ResourceStatePresent,
		},
		{
			name:          "missing and installed",
			state:         v1alpha1.HostStateInstalled,
			params:        desired,
			wantAction:    reconciler.ActionCreate,
			wantPayload:   v1alpha1.Params{"hostname": "eval5", "groups": []any{"centos7", "installed"}},
			wantChanged:   true,
			wantState:     v1alpha1.ResourceStatePresent,
			wantInstalled: true,
		},
		{
			name:        "missing and uninstalled",
			state:       v1alpha1.HostStateUninstalled,
			params:      v1alpha1.Params{"hostname": "eval5", "groups": []any{"centos7", "installed"}},
			wantAction:  reconciler.ActionCreate,
			wantPayload: desired,
			wantChanged: true,
			wantState:   v1alpha1.ResourceStatePresent,
		},
		{
			name:        "existing and absent",
			state:       v1alpha1.HostStateAbsent,
			current:     reconciler.Snapshot{Exists: true, Params: desired, Installed: true},
			wantAction:  reconciler.ActionDelete,
			wantChanged: true,
			wantState:   v1alpha1.ResourceStateAbsent,
		},
		{
			name:      "existing present equal",
			state:     v1alpha1.HostStatePresent,
			params:    desired,
			current:   reconciler.Snapshot{Exists: true, Params: desired},
			wantState: v1alpha1.ResourceStatePresent,
		},
		{
			name:          "existing present keeps installed marker on update",
			state:         v1alpha1.HostStatePresent,
			params:        desired,
			current:       reconciler.Snapshot{Exists: true, Params: other, Installed: true},
			wantAction:    reconciler.ActionUpdate,
			wantPayload:   v1alpha1.Params{"hostname": "eval5", "groups": []any{"centos7", "installed"}},
			wantChanged:   true,
			wantState:     v1alpha1.ResourceStatePresent,
			wantInstalled: true,
		},
		{
			name:          "existing present equal and installed",
			state:         v1alpha1.HostStatePresent,
			params:        desired,
			current:       reconciler.Snapshot{Exists: true, Params: desired, Installed: true},
			wantState:     v1alpha1.ResourceStatePresent,
			wantInstalled: true,
		},
		{
			name:          "existing installed already installed",
			state:         v1alpha1.HostStateInstalled,
			params:        desired,
			current:       reconciler.Snapshot{Exists: true, Params: desired, Installed: true},
			wantState:     v1alpha1.ResourceStatePresent,
			wantInstalled: true,
		},
		{
			name:          "existing installed marks host",
			state:         v1alpha1.HostStateInstalled,
			params:        desired,
			current:       reconciler.Snapshot{Exists: true, Params: desired},
			wantAction:    reconciler.ActionUpdate,
			wantPayload:   v1alpha1.Params{"hostname": "eval5", "groups": []any{"centos7", "installed"}},
			wantChanged:   true,
			wantState:     v1alpha1.ResourceStatePresent,
			wantInstalled: true,
		},
		{
			name:        "existing uninstalled clears marker",
			state:       v1alpha1.HostStateUninstalled,
			params:      desired,
			current:     reconciler.Snapshot{Exists: true, Params: desired, Installed: true},
			wantAction:  reconciler.ActionUpdate,
			wantPayload: desired,
			wantChanged: true,
			wantState:   v1alpha1.ResourceStatePresent,
		},
		{
			name:      "existing uninstalled already uninstalled",
			state:     v1alpha1.HostStateUninstalled,
			params:    desired,
			current:   reconciler.Snapshot{Exists: true, Params: desired},
			wantState: v1alpha1.ResourceStatePresent,
		},
		{
			name:          "existing installed without params keeps stored params",
			state:         v1alpha1.HostStateInstalled,
			current:       reconciler.Snapshot{Exists: true, Params: other},
			wantAction:    reconciler.ActionUpdate,
			wantPayload:   v1alpha1.Params{"hostname": "eval6", "groups": []any{"centos7", "installed"}},
			wantChanged:   true,
			wantState:     v1alpha1.ResourceStatePresent,
			wantInstalled: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			plan, result, err := reconciler.PlanHost(
				v1alpha1.HostInput{UUID: uuid, State: tc.state, Params: tc.params},
				tc.current,
			)

			require.NoError(t, err)
			assert.Equal(t, tc.wantAction, plan.Action)
			assert.True(t, tc.wantPayload.Equal(plan.Payload), "payload %v", plan.Payload)
			assert.Equal(t, tc.wantChanged, result.Changed)
			assert.Equal(t, tc.wantState, result.State)
			assert.Equal(t, tc.wantInstalled, result.Installed)
			assert.Equal(t, uuid, result.UUID)

			groups, groupsErr := result.Params.Groups()
			require.NoError(t, groupsErr)
			assert.NotContains(t, groups, v1alpha1.InstalledMarker)
		})
	}
}

func TestPlanGroup_SetOverridesStoredParams(t *testing.T) {
	t.Parallel()

	stored := v1alpha1.Params{"kernel": "vmlinuz", "cpus": float64(2)}

	plan, result := reconciler.PlanGroup(v1alpha1.GroupInput{
		Name:  "centos7",
		State: v1alpha1.GroupStatePresent,
		Set:   v1alpha1.Params{"cpus": float64(4)},
	}, reconciler.Snapshot{Exists: true, Params: stored})

	want := v1alpha1.Params{"kernel": "vmlinuz", "cpus": float64(4)}

	assert.Equal(t, reconciler.ActionUpdate, plan.Action)
	assert.True(t, want.Equal(plan.Payload), "payload %v", plan.Payload)
	assert.True(t, result.Changed)
	assert.Equal(t, float64(2), stored["cpus"])
}

func TestPlanHost_SetKeepsStoredKeysAndInstalledFlag(t *testing.T) {
	t.Parallel()

	plan, result, err := reconciler.PlanHost(v1alpha1.HostInput{
		UUID:  "h1",
		State: v1alpha1.HostStatePresent,
		Set:   v1alpha1.Params{"hostname": "eval6"},
	}, reconciler.Snapshot{
		Exists:    true,
		Installed: true,
		Params:    v1alpha1.Params{"hostname": "eval5", "groups": []any{"rhel7"}},
	})

	require.NoError(t, err)
	assert.Equal(t, reconciler.ActionUpdate, plan.Action)
	assert.True(t, result.Installed)
	assert.True(t, v1alpha1.Params{"hostname": "eval6", "groups": []any{"rhel7", "installed"}}.Equal(plan.Payload),
		"payload %v", plan.Payload)
}

func TestPlanHost_RejectsInvalidGroups(t *testing.T) {
	t.Parallel()

	_, _, err := reconciler.PlanHost(v1alpha1.HostInput{
		UUID:   "h1",
		State:  v1alpha1.HostStatePresent,
		Params: v1alpha1.Params{"groups": "installed"},
	}, reconciler.Snapshot{})

	require.ErrorIs(t, err, v1alpha1.ErrInvalidGroups)
}

package reconciler_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/devantler-tech/bergctl/pkg/svc/reconciler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func clientsFor(servers map[string]bergenholm.Interface) reconciler.ClientFunc {
	return func(baseURL string) (bergenholm.Interface, error) {
		return servers[baseURL], nil
	}
}

func TestApplier_AppliesGroupsThenHosts(t *testing.T) {
	t.Parallel()

	fake := NewFakeServer()
	applier := &reconciler.Applier{
		Clients:    clientsFor(map[string]bergenholm.Interface{v1alpha1.DefaultURL: fake}),
		DefaultURL: v1alpha1.DefaultURL,
	}

	report, err := applier.Apply(context.Background(), v1alpha1.Manifest{
		Hosts: []v1alpha1.HostInput{{UUID: testUUID, State: v1alpha1.HostStateInstalled}},
		Groups: []v1alpha1.GroupInput{
			{Name: "centos7", Params: v1alpha1.Params{"kernel": "vmlinuz"}},
			{Name: "ubuntu", State: v1alpha1.GroupStateAbsent},
		},
	})

	require.NoError(t, err)
	assert.True(t, report.Changed)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, "centos7", report.Groups[0].Name)
	assert.Equal(t, "ubuntu", report.Groups[1].Name)
	assert.False(t, report.Groups[1].Changed)
	require.Len(t, report.Hosts, 1)
	assert.True(t, report.Hosts[0].Installed)
	assert.Empty(t, report.Failed)
	assert.Equal(t, []string{"create groups/centos7", "create hosts/" + testUUID}, fake.Writes())
}

func TestApplier_ResolvesURLs(t *testing.T) {
	t.Parallel()

	const (
		manifestURL = "http://manifest.test/api/1.0"
		itemURL     = "http://item.test/api/1.0"
	)

	manifestServer := NewFakeServer()
	itemServer := NewFakeServer()
	calls := map[string]int{}

	applier := &reconciler.Applier{
		Clients: func(baseURL string) (bergenholm.Interface, error) {
			calls[baseURL]++

			return map[string]bergenholm.Interface{manifestURL: manifestServer, itemURL: itemServer}[baseURL], nil
		},
	}

	_, err := applier.Apply(context.Background(), v1alpha1.Manifest{
		URL: manifestURL,
		Groups: []v1alpha1.GroupInput{
			{Name: "a"},
			{Name: "b", URL: itemURL},
			{Name: "c"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"create groups/a", "create groups/c"}, manifestServer.Writes())
	assert.Equal(t, []string{"create groups/b"}, itemServer.Writes())
	assert.Equal(t, map[string]int{manifestURL: 1, itemURL: 1}, calls)
}

func TestApplier_RejectsInvalidManifest(t *testing.T) {
	t.Parallel()

	fake := NewFakeServer()
	applier := &reconciler.Applier{Clients: clientsFor(map[string]bergenholm.Interface{v1alpha1.DefaultURL: fake})}

	manifest := v1alpha1.Manifest{Groups: []v1alpha1.GroupInput{{Name: "a"}, {Name: "a"}}}

	_, err := applier.Apply(context.Background(), manifest)

	require.ErrorIs(t, err, v1alpha1.ErrDuplicateIdentifier)
	assert.Empty(t, fake.Writes())
	assert.Empty(t, manifest.Groups[0].State, "the caller's manifest is not modified")
}

func TestApplier_SameNameOnDifferentURLs(t *testing.T) {
	t.Parallel()

	const otherURL = "http://other.test/api/1.0"

	defaultServer := NewFakeServer()
	otherServer := NewFakeServer()
	applier := &reconciler.Applier{
		Clients: clientsFor(map[string]bergenholm.Interface{
			v1alpha1.DefaultURL: defaultServer,
			otherURL:            otherServer,
		}),
		DefaultURL: v1alpha1.DefaultURL,
	}

	report, err := applier.Apply(context.Background(), v1alpha1.Manifest{
		Groups: []v1alpha1.GroupInput{
			{Name: "centos7"},
			{Name: "centos7", URL: otherURL},
		},
	})

	require.NoError(t, err)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, []string{"create groups/centos7"}, defaultServer.Writes())
	assert.Equal(t, []string{"create groups/centos7"}, otherServer.Writes())

	_, err = applier.Apply(context.Background(), v1alpha1.Manifest{
		Groups: []v1alpha1.GroupInput{
			{Name: "centos7"},
			{Name: "centos7", URL: v1alpha1.DefaultURL},
		},
	})

	require.ErrorIs(t, err, v1alpha1.ErrDuplicateIdentifier)
}

func TestApplier_FailFastSkipsHosts(t *testing.T) {
	t.Parallel()

	client := NewMockClient()
	client.On("Get", mock.Anything, bergenholm.KindGroup, "centos7").Return(nil, errBoom)

	applier := &reconciler.Applier{Clients: clientsFor(map[string]bergenholm.Interface{v1alpha1.DefaultURL: client})}

	report, err := applier.Apply(context.Background(), v1alpha1.Manifest{
		Groups: []v1alpha1.GroupInput{{Name: "centos7"}},
		Hosts:  []v1alpha1.HostInput{{UUID: testUUID}},
	})

	require.ErrorIs(t, err, errBoom)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, bergenholm.KindGroup, report.Failed[0].Kind)
	assert.Equal(t, "centos7", report.Failed[0].ID)
	assert.Empty(t, report.Hosts)
	client.AssertNotCalled(t, "Get", mock.Anything, bergenholm.KindHost, mock.Anything)
}

func TestApplier_ContinueOnErrorAggregates(t *testing.T) {
	t.Parallel()

	client := NewMockClient()
	client.On("Get", mock.Anything, bergenholm.KindGroup, "broken").Return(nil, errBoom)
	client.On("Get", mock.Anything, bergenholm.KindGroup, "centos7").Return(v1alpha1.Params{}, nil)
	client.On("Get", mock.Anything, bergenholm.KindHost, testUUID).Return(nil, errBoom)

	applier := &reconciler.Applier{
		Clients:         clientsFor(map[string]bergenholm.Interface{v1alpha1.DefaultURL: client}),
		ContinueOnError: true,
		Parallelism:     4,
	}

	report, err := applier.Apply(context.Background(), v1alpha1.Manifest{
		Groups: []v1alpha1.GroupInput{{Name: "broken"}, {Name: "centos7"}},
		Hosts:  []v1alpha1.HostInput{{UUID: testUUID}},
	})

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.False(t, report.Changed)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "centos7", report.Groups[0].Name)
	require.Len(t, report.Failed, 2)
	assert.Equal(t, "broken", report.Failed[0].ID)
	assert.Equal(t, testUUID, report.Failed[1].ID)
}

func TestApplier_DryRun(t *testing.T) {
	t.Parallel()

	fake := NewFakeServer()
	applier := &reconciler.Applier{
		Clients:     clientsFor(map[string]bergenholm.Interface{v1alpha1.DefaultURL: fake}),
		DryRun:      true,
		Parallelism: 2,
	}

	report, err := applier.Apply(context.Background(), v1alpha1.Manifest{
		Groups: []v1alpha1.GroupInput{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	})

	require.NoError(t, err)
	assert.True(t, report.Changed)
	assert.Len(t, report.Groups, 3)
	assert.Empty(t, fake.Writes())
}

func TestApplier_NilClients(t *testing.T) {
	t.Parallel()

	_, err := (&reconciler.Applier{}).Apply(context.Background(), v1alpha1.Manifest{})

	require.ErrorIs(t, err, reconciler.ErrNilClient)
}

package reconciler_test

import (
	"context"
	"net/http"
	"sync"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/client/bergenholm"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of bergenholm.Interface.
type MockClient struct {
	mock.Mock
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Get(ctx context.Context, kind bergenholm.Kind, id string) (v1alpha1.Params, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(v1alpha1.Params), args.Error(1)
}

func (m *MockClient) Create(ctx context.Context, kind bergenholm.Kind, id string, params v1alpha1.Params) error {
	args := m.Called(ctx, kind, id, params)

	return args.Error(0)
}

func (m *MockClient) Update(ctx context.Context, kind bergenholm.Kind, id string, params v1alpha1.Params) error {
	args := m.Called(ctx, kind, id, params)

	return args.Error(0)
}

func (m *MockClient) Delete(ctx context.Context, kind bergenholm.Kind, id string) error {
	args := m.Called(ctx, kind, id)

	return args.Error(0)
}

// FakeServer is an in-memory Bergenholm that records every write.
type FakeServer struct {
	mu     sync.Mutex
	store  map[bergenholm.Kind]map[string]v1alpha1.Params
	writes []string
}

func NewFakeServer() *FakeServer {
	return &FakeServer{store: map[bergenholm.Kind]map[string]v1alpha1.Params{
		bergenholm.KindGroup: {},
		bergenholm.KindHost:  {},
	}}
}

// Seed stores a resource without recording a write.
func (f *FakeServer) Seed(kind bergenholm.Kind, id string, params v1alpha1.Params) *FakeServer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.store[kind][id] = params.DeepCopy()

	return f
}

// Stored returns the stored params and whether the resource exists.
func (f *FakeServer) Stored(kind bergenholm.Kind, id string) (v1alpha1.Params, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	params, ok := f.store[kind][id]

	return params.DeepCopy(), ok
}

// Writes returns the recorded writes as "verb kind/id".
func (f *FakeServer) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.writes...)
}

func (f *FakeServer) Get(_ context.Context, kind bergenholm.Kind, id string) (v1alpha1.Params, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	params, ok := f.store[kind][id]
	if !ok {
		return nil, &bergenholm.StatusError{
			Method:     http.MethodGet,
			URL:        string(kind) + "/" + id,
			StatusCode: http.StatusNotFound,
			Reason:     "Not Found",
		}
	}

	return params.DeepCopy(), nil
}

func (f *FakeServer) Create(_ context.Context, kind bergenholm.Kind, id string, params v1alpha1.Params) error {
	return f.put("create", kind, id, params)
}

func (f *FakeServer) Update(_ context.Context, kind bergenholm.Kind, id string, params v1alpha1.Params) error {
	return f.put("update", kind, id, params)
}

func (f *FakeServer) Delete(_ context.Context, kind bergenholm.Kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.store[kind], id)
	f.writes = append(f.writes, "delete "+string(kind)+"/"+id)

	return nil
}

func (f *FakeServer) put(verb string, kind bergenholm.Kind, id string, params v1alpha1.Params) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if params == nil {
		params = v1alpha1.Params{}
	}

	f.store[kind][id] = params.DeepCopy()
	f.writes = append(f.writes, verb+" "+string(kind)+"/"+id)

	return nil
}

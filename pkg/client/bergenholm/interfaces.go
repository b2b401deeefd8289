package bergenholm

import (
	"context"
	"net/http"
	"time"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/sirupsen/logrus"
)

// Kind is the collection a resource lives in.
type Kind string

const (
	// KindGroup is the groups collection.
	KindGroup Kind = "groups"
	// KindHost is the hosts collection.
	KindHost Kind = "hosts"
)

// Interface is the part of the Bergenholm REST API used by the reconcilers.
type Interface interface {
	// Get returns the stored parameters of a resource, or ErrNotFound.
	Get(ctx context.Context, kind Kind, id string) (v1alpha1.Params, error)
	// Create stores a new resource.
	Create(ctx context.Context, kind Kind, id string, params v1alpha1.Params) error
	// Update replaces the parameters of an existing resource.
	Update(ctx context.Context, kind Kind, id string, params v1alpha1.Params) error
	// Delete removes a resource.
	Delete(ctx context.Context, kind Kind, id string) error
}

// Factory builds clients for a base URL.
type Factory interface {
	New(baseURL string, opts Options) (Interface, error)
}

// Options configures a Client.
type Options struct {
	// HTTPClient sends the requests. If nil, a new http.Client is used.
	HTTPClient *http.Client
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// ReadRetries is how many times a failed GET is retried on transient errors.
	ReadRetries int
	// RetryBaseWait is the first backoff delay between read attempts.
	RetryBaseWait time.Duration
	// RetryMaxWait caps the backoff delay between read attempts.
	RetryMaxWait time.Duration
	// Logger receives one debug line per request. If nil, logs are discarded.
	Logger logrus.FieldLogger
}

// DefaultFactory builds *Client values.
type DefaultFactory struct {
	// HTTPClient, when set, is used by every client the factory builds
	// unless Options.HTTPClient overrides it.
	HTTPClient *http.Client
}

var _ Factory = DefaultFactory{}

// New builds a client for baseURL.
//
//nolint:ireturn // Factory interface requires returning interface type
func (f DefaultFactory) New(baseURL string, opts Options) (Interface, error) {
	if opts.HTTPClient == nil {
		opts.HTTPClient = f.HTTPClient
	}

	return NewClient(baseURL, opts)
}

package bergenholm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devantler-tech/bergctl/pkg/apis/bergenholm/v1alpha1"
	"github.com/devantler-tech/bergctl/pkg/client/netretry"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// maxErrorBodyBytes bounds how much of an error response body is logged.
const maxErrorBodyBytes = 512

//nolint:gochecknoglobals // shared, stateless codec
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to one Bergenholm endpoint.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	readRetries int
	baseWait    time.Duration
	maxWait     time.Duration
	logger      logrus.FieldLogger
}

var _ Interface = (*Client)(nil)

// NewClient creates a client for baseURL, e.g. "http://localhost/api/1.0".
// A trailing slash is added to baseURL when missing.
func NewClient(baseURL string, opts Options) (*Client, error) {
	err := v1alpha1.ValidateURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("create bergenholm client: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if opts.Timeout > 0 {
		withTimeout := *httpClient
		withTimeout.Timeout = opts.Timeout
		httpClient = &withTimeout
	}

	baseWait := opts.RetryBaseWait
	if baseWait <= 0 {
		baseWait = v1alpha1.DefaultRetryBaseWait
	}

	maxWait := opts.RetryMaxWait
	if maxWait <= 0 {
		maxWait = v1alpha1.DefaultRetryMaxWait
	}

	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Client{
		baseURL:     NormalizeBaseURL(baseURL),
		httpClient:  httpClient,
		readRetries: max(opts.ReadRetries, 0),
		baseWait:    baseWait,
		maxWait:     maxWait,
		logger:      logger,
	}, nil
}

// NormalizeBaseURL returns raw with exactly one trailing slash.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(raw, "/") + "/"
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResourceURL returns the URL of a resource. The identifier is path-escaped.
func (c *Client) ResourceURL(kind Kind, id string) string {
	return c.baseURL + string(kind) + "/" + url.PathEscape(id)
}

// Get reads a resource. Transient failures are retried up to the configured
// number of read retries.
func (c *Client) Get(ctx context.Context, kind Kind, id string) (v1alpha1.Params, error) {
	resourceURL := c.ResourceURL(kind, id)

	for attempt := 0; ; attempt++ {
		body, err := c.do(ctx, http.MethodGet, resourceURL, nil)
		if err == nil {
			return decodeParams(resourceURL, body)
		}

		if attempt >= c.readRetries || !netretry.IsRetryable(err) || ctx.Err() != nil {
			return nil, err
		}

		delay := netretry.ExponentialDelay(attempt+1, c.baseWait, c.maxWait)
		c.logger.WithFields(logrus.Fields{
			"url":     resourceURL,
			"attempt": attempt + 1,
			"delay":   delay.String(),
		}).WithError(err).Info("retrying bergenholm read")

		sleepErr := netretry.Sleep(ctx, delay)
		if sleepErr != nil {
			return nil, fmt.Errorf("read %s: %w", resourceURL, sleepErr)
		}
	}
}

// Create stores a new resource with POST.
func (c *Client) Create(ctx context.Context, kind Kind, id string, params v1alpha1.Params) error {
	return c.write(ctx, http.MethodPost, kind, id, params)
}

// Update replaces a resource with PUT.
func (c *Client) Update(ctx context.Context, kind Kind, id string, params v1alpha1.Params) error {
	return c.write(ctx, http.MethodPut, kind, id, params)
}

// Delete removes a resource.
func (c *Client) Delete(ctx context.Context, kind Kind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.ResourceURL(kind, id), nil)

	return err
}

// --- internals ---

func (c *Client) write(
	ctx context.Context,
	method string,
	kind Kind,
	id string,
	params v1alpha1.Params,
) error {
	if params == nil {
		params = v1alpha1.Params{}
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", method, err)
	}

	_, err = c.do(ctx, method, c.ResourceURL(kind, id), payload)

	return err
}

func (c *Client) do(ctx context.Context, method, resourceURL string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, resourceURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}

	req.Header.Set("Accept", "application/json")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, resourceURL, err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response from %s: %w", method, resourceURL, err)
	}

	entry := c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    resourceURL,
		"status": resp.StatusCode,
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		entry.WithField("body", truncate(body, maxErrorBodyBytes)).Debug("bergenholm request failed")

		return nil, &StatusError{
			Method:     method,
			URL:        resourceURL,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
		}
	}

	entry.Debug("bergenholm request")

	return body, nil
}

func decodeParams(resourceURL string, body []byte) (v1alpha1.Params, error) {
	var params v1alpha1.Params

	err := json.Unmarshal(body, &params)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrMalformedBody, resourceURL, err)
	}

	if params == nil {
		return nil, fmt.Errorf("%w from %s: expected a JSON object", ErrMalformedBody, resourceURL)
	}

	return params, nil
}

// reasonPhrase extracts "Not Found" from a status line like "404 Not Found".
func reasonPhrase(resp *http.Response) string {
	_, reason, found := strings.Cut(resp.Status, " ")
	if found && strings.TrimSpace(reason) != "" {
		return strings.TrimSpace(reason)
	}

	return http.StatusText(resp.StatusCode)
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

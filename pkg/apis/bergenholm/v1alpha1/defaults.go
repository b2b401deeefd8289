package v1alpha1

import "time"

const (
	// DefaultURL is the Bergenholm REST endpoint used when none is configured.
	DefaultURL = "http://localhost/api/1.0"
	// DefaultLogLevel keeps diagnostics quiet unless asked for.
	DefaultLogLevel = "warning"
	// DefaultReadRetries disables read retries.
	DefaultReadRetries = 0
	// DefaultTimeout disables the request timeout.
	DefaultTimeout time.Duration = 0
	// DefaultRetryBaseWait is the first backoff delay between read attempts.
	DefaultRetryBaseWait = 500 * time.Millisecond
	// DefaultRetryMaxWait caps the backoff delay between read attempts.
	DefaultRetryMaxWait = 8 * time.Second
	// DefaultParallelism runs manifest items one at a time.
	DefaultParallelism = 1
)

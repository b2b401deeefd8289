// Package netretry classifies transient network and HTTP failures and computes
// the backoff between attempts. bergctl only retries reads with it.
package netretry

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	HTTPStatusCode() int
}

// httpStatusCodePattern matches HTTP 5xx status codes at word boundaries
// to avoid false positives on port numbers like ":5000".
var httpStatusCodePattern = regexp.MustCompile(`\b50[0-4]\b`)

// transientPatterns are substrings of TCP-level and proxy failures worth another attempt.
//
//nolint:gochecknoglobals // read-only lookup table
var transientPatterns = []string{
	"Internal Server Error", "Bad Gateway",
	"Service Unavailable", "Gateway Timeout",
	"connection reset by peer", "connection refused",
	"i/o timeout", "TLS handshake timeout",
	"unexpected EOF", "no such host",
	"Client.Timeout exceeded",
}

// IsRetryable reports whether err is a transient failure. Errors carrying a
// status code are judged by the code alone. Callers stop retrying on their own
// once their context is done.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var coder StatusCoder
	if errors.As(err, &coder) {
		return IsRetryableStatus(coder.HTTPStatusCode())
	}

	errMsg := err.Error()

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return httpStatusCodePattern.MatchString(errMsg)
}

// IsRetryableStatus reports whether an HTTP status code signals a transient server failure.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// maxShift is the largest doubling that still fits a positive time.Duration.
const maxShift = 62

// ExponentialDelay returns the delay before retry attempt (1-based)
// using min(baseWait * 2^(attempt-1), maxWait). Attempts whose delay would
// overflow get maxWait.
func ExponentialDelay(
	attempt int,
	baseWait, maxWait time.Duration,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	if baseWait <= 0 {
		return 0
	}

	shift := attempt - 1
	if shift > maxShift || baseWait > maxWait>>shift {
		return maxWait
	}

	return min(baseWait<<shift, maxWait)
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

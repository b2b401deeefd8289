// Package bergenholm is a small REST client for the Bergenholm provisioning service.
//
// Groups live under {base}/groups/{name} and hosts under {base}/hosts/{uuid}.
// Each resource supports GET (read), POST (create), PUT (replace) and DELETE.
// A 404 on read is reported as ErrNotFound; any other non-2xx status becomes a
// *StatusError. Reads can optionally be retried on transient failures; writes
// are never retried.
package bergenholm

// Package client provides clients for the services bergctl talks to.
//
//   - bergenholm: REST client for Bergenholm groups and hosts
//   - netretry: Transient network error classification and backoff
package client

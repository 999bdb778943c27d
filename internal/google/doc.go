// Package google owns the OAuth2 credential lifecycle for all Google
// service adapters.
//
// The Manager holds a long-lived refresh token (never mutated, only
// revocable externally) and exchanges it for short-lived access tokens
// on demand. Access tokens are cached and renewed before expiry with a
// safety margin. Renewal is single-flight: when several concurrent tool
// calls find the cached token expired, exactly one refresh-token
// exchange is issued and all callers share its result, preventing
// refresh-token abuse and rate-limit exhaustion.
//
// Transient failures of the token endpoint (network errors, 5xx) are
// retried with bounded exponential backoff; a rejected exchange (revoked
// or invalid refresh token) fails immediately with ErrRefreshRejected.
package google

// Package common contains shared constants and sentinel errors used across
// the CreatorGenius client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrUnauthorized indicates the server rejected the presented credential
	// (HTTP 401) or refused the login/registration attempt.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates no response reached the server: connection
	// failure, DNS error, or a request that exceeded its deadline.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotFound is returned for missing resources (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrStorage indicates the local credential store failed to read or write.
	ErrStorage = errors.New("credential storage failure")
)

package api

import (
	"fmt"
	"net/http"

	"github.com/Scaleupapp-nirpeksh/creatorgenius-cli/internal/common"
)

// APIError is the uniform failure shape returned by the gateway. Every axis
// of failure — transport errors, malformed responses, structured server error
// bodies — is normalized into it before reaching calling code.
//
// NoResponse distinguishes "the request never reached the server" (network
// failure, timeout) from "the server responded with an error"; callers branch
// on it to decide whether retry/backoff is sensible.
type APIError struct {
	Message    string
	StatusCode int
	NoResponse bool
}

func (e *APIError) Error() string {
	if e.NoResponse {
		return fmt.Sprintf("api: no response: %s", e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the error onto the shared sentinels so callers can use
// errors.Is without inspecting fields.
func (e *APIError) Unwrap() error {
	switch {
	case e.NoResponse:
		return common.ErrUnavailable
	case e.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	default:
		return nil
	}
}

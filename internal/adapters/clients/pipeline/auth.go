package pipeline

import (
	"errors"
	"net/http"
)

// ErrMissingCredentials is returned by BasicAuth when no group ID is configured.
var ErrMissingCredentials = errors.New("missing api credentials")

// BasicAuth attaches the group ID and API key as HTTP basic credentials.
func BasicAuth(groupID, apiKey string) Step {
	return Named("basic-auth", StepFunc(func(req *http.Request) error {
		if groupID == "" {
			return ErrMissingCredentials
		}

		req.SetBasicAuth(groupID, apiKey)

		return nil
	}))
}

// Header sets a fixed header on every request. Useful as a caller step for
// gateways that expect their own auth or tenant headers.
func Header(name, value string) Step {
	return Named("header:"+name, StepFunc(func(req *http.Request) error {
		req.Header.Set(name, value)
		return nil
	}))
}

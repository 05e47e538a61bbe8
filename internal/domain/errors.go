package domain

import (
	"errors"
	"fmt"
)

// ErrAPIKeyMissing indicates the provider API key was never configured.
var ErrAPIKeyMissing = errors.New("watsonx API key is not configured")

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// AuthError indicates the identity endpoint rejected the exchange or
// returned an unusable payload.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to authenticate with IBM Cloud: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("failed to authenticate with IBM Cloud: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

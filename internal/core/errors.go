package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport-level failures, including non-2xx responses.
	ErrNetwork = errors.New("network error")
	// ErrTimeout marks requests that ran out of time. Always reported together with ErrNetwork.
	ErrTimeout = errors.New("request timed out")
	// ErrMalformedRecord marks a single upstream record that could not be normalized.
	ErrMalformedRecord = errors.New("malformed event record")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "unexpected status: " + e.Status
	}
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorClass represents a classification of upstream failures.
type ErrorClass string

const (
	// ErrorClassTimeout represents a request that did not complete
	// within the client's timeout.
	ErrorClassTimeout ErrorClass = "timeout"

	// ErrorClassStatus represents a non-2xx response from upstream.
	ErrorClassStatus ErrorClass = "status"

	// ErrorClassNetwork represents transport-level failures other than
	// timeouts (DNS, connection refused, malformed body).
	ErrorClassNetwork ErrorClass = "network"
)

// Error represents an upstream failure with enough context for the
// proxy layer to map it onto an HTTP status.
type Error struct {
	Service    string
	Class      ErrorClass
	StatusCode int // upstream status, set when Class is ErrorClassStatus
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s upstream %s error (status %d)", e.Service, e.Class, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s upstream %s error: %v", e.Service, e.Class, e.Err)
	}
	return fmt.Sprintf("%s upstream %s error", e.Service, e.Class)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is an upstream timeout.
func IsTimeout(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Class == ErrorClassTimeout
}

// StatusCode returns the upstream status code carried by err, or 0
// when err is not a status-class upstream error.
func StatusCode(err error) int {
	var ue *Error
	if errors.As(err, &ue) && ue.Class == ErrorClassStatus {
		return ue.StatusCode
	}
	return 0
}

// classify categorizes a transport error from http.Client.Do.
func classify(err error) ErrorClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorClassTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return ErrorClassTimeout
	}
	return ErrorClassNetwork
}

package upstream

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "status error carries upstream code",
			err: &Error{
				Service:    "overpass",
				Class:      ErrorClassStatus,
				StatusCode: 503,
			},
			expected: "overpass upstream status error (status 503)",
		},
		{
			name: "timeout with wrapped error",
			err: &Error{
				Service: "climate",
				Class:   ErrorClassTimeout,
				Err:     context.DeadlineExceeded,
			},
			expected: "climate upstream timeout error: context deadline exceeded",
		},
		{
			name: "bare class",
			err: &Error{
				Service: "canopy",
				Class:   ErrorClassNetwork,
			},
			expected: "canopy upstream network error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &Error{Service: "overpass", Class: ErrorClassNetwork, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestIsTimeout(t *testing.T) {
	timeout := &Error{Service: "climate", Class: ErrorClassTimeout}
	status := &Error{Service: "climate", Class: ErrorClassStatus, StatusCode: 502}

	if !IsTimeout(timeout) {
		t.Error("IsTimeout should be true for timeout-class errors")
	}
	if IsTimeout(status) {
		t.Error("IsTimeout should be false for status-class errors")
	}
	if IsTimeout(errors.New("plain")) {
		t.Error("IsTimeout should be false for unrelated errors")
	}

	wrapped := fmt.Errorf("query failed: %w", timeout)
	if !IsTimeout(wrapped) {
		t.Error("IsTimeout should see through wrapping")
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "status error",
			err:  &Error{Service: "canopy", Class: ErrorClassStatus, StatusCode: 404},
			want: 404,
		},
		{
			name: "timeout error has no status",
			err:  &Error{Service: "canopy", Class: ErrorClassTimeout},
			want: 0,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: 0,
		},
		{
			name: "wrapped status error",
			err:  fmt.Errorf("tile: %w", &Error{Service: "canopy", Class: ErrorClassStatus, StatusCode: 502}),
			want: 502,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if got := classify(context.DeadlineExceeded); got != ErrorClassTimeout {
		t.Errorf("classify(DeadlineExceeded) = %v, want timeout", got)
	}
	if got := classify(errors.New("dns failure")); got != ErrorClassNetwork {
		t.Errorf("classify(plain) = %v, want network", got)
	}
}

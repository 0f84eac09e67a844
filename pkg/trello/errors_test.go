package trello

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "error with message",
			err: &Error{
				Op:  "Boards.Get",
				Err: ErrNotFound,
				Msg: "board abc123",
			},
			expected: "Boards.Get: board abc123: resource not found",
		},
		{
			name: "error without message",
			err: &Error{
				Op:  "Cards.Delete",
				Err: ErrUnauthorized,
			},
			expected: "Cards.Delete: invalid or expired credentials",
		},
		{
			name: "error with nested error",
			err: &Error{
				Op:  "Lists.Cards",
				Err: errors.New("connection timeout"),
				Msg: "failed to reach API",
			},
			expected: "Lists.Cards: failed to reach API: connection timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name: "wrapped ErrNotFound matches",
			err: &Error{
				Op:  "Boards.Get",
				Err: ErrNotFound,
			},
			target: ErrNotFound,
			want:   true,
		},
		{
			name: "double wrapped error matches",
			err: &Error{
				Op: "Boards.Close",
				Err: &Error{
					Op:  "Boards.Update",
					Err: ErrRateLimited,
				},
			},
			target: ErrRateLimited,
			want:   true,
		},
		{
			name: "different error does not match",
			err: &Error{
				Op:  "Boards.Get",
				Err: ErrNotFound,
			},
			target: ErrUnauthorized,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{name: "401 maps to ErrUnauthorized", status: 401, sentinel: ErrUnauthorized},
		{name: "404 maps to ErrNotFound", status: 404, sentinel: ErrNotFound},
		{name: "429 maps to ErrRateLimited", status: 429, sentinel: ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: tt.status}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%d, %v) = false, want true", tt.status, tt.sentinel)
			}
		})
	}

	t.Run("500 maps to no sentinel", func(t *testing.T) {
		err := &APIError{StatusCode: 500}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
			t.Error("unexpected sentinel match for 500")
		}
	})
}

func TestAPIError_Temporary(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{status: 429, want: true},
		{status: 500, want: true},
		{status: 503, want: true},
		{status: 400, want: false},
		{status: 404, want: false},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if got := err.Temporary(); got != tt.want {
			t.Errorf("Temporary() for %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := &APIError{StatusCode: 400, Message: "invalid id"}
		want := "API error (status 400): invalid id"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("without message", func(t *testing.T) {
		err := &APIError{StatusCode: 500}
		want := "API error (status 500)"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}

func TestError_AsUsage(t *testing.T) {
	wrapped := &Error{
		Op: "Boards.Get",
		Err: &APIError{
			StatusCode: 404,
			Message:    "board not found",
		},
	}

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As failed to match *APIError")
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}

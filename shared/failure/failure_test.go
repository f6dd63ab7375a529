package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"BadRequestFromString", failure.BadRequestFromString("Invalid booking mode"), http.StatusBadRequest, "Invalid booking mode"},
		{"BadRequest", failure.BadRequest(errors.New("validation failed")), http.StatusBadRequest, "validation failed"},
		{"Unauthorized", failure.Unauthorized("Token has expired"), http.StatusUnauthorized, "Token has expired"},
		{"Forbidden", failure.Forbidden("Insufficient permissions"), http.StatusForbidden, "Insufficient permissions"},
		{"NotFound", failure.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"Conflict", failure.Conflict("Booking dates overlap with existing booking"), http.StatusConflict, "Booking dates overlap with existing booking"},
		{"Internal", failure.Internal("Database error"), http.StatusInternalServerError, "Database error"},
		{"InternalError", failure.InternalError(errors.New("boom")), http.StatusInternalServerError, "boom"},
		{"UpstreamUnavailable", failure.UpstreamUnavailable("booking service unavailable"), http.StatusBadGateway, "booking service unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if err := failure.BadRequest(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("create booking: %w", failure.Conflict("overlap")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetMessage(t *testing.T) {
	if msg := failure.GetMessage(failure.NotFound("room not found")); msg != "room not found" {
		t.Errorf("expected failure message, got %q", msg)
	}

	if msg := failure.GetMessage(errors.New("pq: connection refused")); msg != "Internal Server Error" {
		t.Errorf("expected generic message for internal errors, got %q", msg)
	}
}

package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCode_HTTPStatus(t *testing.T) {
	cases := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeValidationMissingField, http.StatusBadRequest},
		{ErrCodeValidationOutOfRange, http.StatusBadRequest},
		{ErrCodeValidationInvalidEnum, http.StatusBadRequest},
		{ErrCodeValidationRangeOrder, http.StatusBadRequest},
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeRateLimit, http.StatusTooManyRequests},
		{ErrCodeNotFoundEndpoint, http.StatusNotFound},
		{ErrCodeInternalComputation, http.StatusInternalServerError},
		{ErrCodeInternalUnexpected, http.StatusInternalServerError},
		{ErrorCode("something_unknown"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := tc.code.HTTPStatus(); got != tc.expected {
				t.Errorf("HTTPStatus(%s) = %d, want %d", tc.code, got, tc.expected)
			}
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := NewAppError(ErrCodeInternalUnexpected, "something failed", inner)

	if err.Error() != "internal_unexpected_error: something failed" {
		t.Errorf("unexpected Error() output: %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var appErr *AppError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &appErr) {
		t.Error("expected errors.As to find *AppError through wrapping")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	base := NewAppErrorWithDetails(ErrCodeValidationOutOfRange, "out of range", nil,
		map[string]any{"field": "batch_size"})

	merged := base.WithDetails(map[string]any{"max": 5000})

	if base.Details["max"] != nil {
		t.Error("WithDetails must not mutate the original error")
	}
	if merged.Details["field"] != "batch_size" || merged.Details["max"] != 5000 {
		t.Errorf("unexpected merged details: %v", merged.Details)
	}
	if merged.Code != base.Code {
		t.Errorf("expected code to be preserved, got %s", merged.Code)
	}
}

func TestNewComputationError(t *testing.T) {
	err := NewComputationError("division by zero guard", nil)
	if err.Code != ErrCodeInternalComputation {
		t.Errorf("expected code %s, got %s", ErrCodeInternalComputation, err.Code)
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus())
	}
}

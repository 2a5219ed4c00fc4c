// GO TESTING BASICS:
// 1. Test files MUST end in _test.go, Go's tooling auto-discovers them
// 2. Test functions MUST start with "Test" and take *testing.T as the only param
// 3. Same package as the code being tested (so we can access unexported stuff)
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "Empty wraps ErrNotFound",
			err:       Empty("jokes"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("text", "joke text is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Internal wraps ErrInternal",
			err:       Internal("Failed to add joke"),
			target:    ErrInternal,
			wantMatch: true,
		},
		{
			name:      "wrapped with fmt.Errorf still matches",
			err:       fmt.Errorf("submitting joke: %w", ValidationFailed("text", "bad")),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Empty does NOT match ErrValidation",
			err:       Empty("jokes"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Internal does NOT match ErrNotFound",
			err:       Internal("boom"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "Empty message names the resource",
			err:         Empty("jokes"),
			wantMessage: "no jokes available",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("text", "joke text is required"),
			wantMessage: "joke text is required",
		},
		{
			name:        "Internal uses custom message",
			err:         Internal("Failed to add joke"),
			wantMessage: "Failed to add joke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := Empty("jokes")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("category", "category must be a string")

	if err.Field != "category" {
		t.Errorf("Field = %q, want %q", err.Field, "category")
	}
}

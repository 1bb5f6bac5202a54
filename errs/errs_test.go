package errs

import (
	"errors"
	"testing"
)

func TestErrorConstants(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "ErrInvalidInput",
			err:      ErrInvalidInput,
			expected: "invalid input",
		},
		{
			name:     "ErrUnsupportedOperation",
			err:      ErrUnsupportedOperation,
			expected: "unsupported operation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message '%s', got '%s'", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestErrorUniqueness(t *testing.T) {
	if errors.Is(ErrInvalidInput, ErrUnsupportedOperation) {
		t.Error("ErrInvalidInput and ErrUnsupportedOperation should not be equal")
	}
	if errors.Is(ErrUnsupportedOperation, ErrInvalidInput) {
		t.Error("ErrUnsupportedOperation and ErrInvalidInput should not be equal")
	}
}

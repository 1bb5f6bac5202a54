package errs

import (
	"errors"
)

var (
	// ErrInvalidInput indicates the value to encode cannot be read as an integer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedOperation indicates an instruction matched no known shape.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

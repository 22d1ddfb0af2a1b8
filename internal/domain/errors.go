package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks caller mistakes: bad dates, missing parameters,
	// malformed phone numbers. The HTTP layer maps it to 400.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError carries a caller-facing message and matches ErrInvalidInput.
type InputError struct{ Detail string }

func (e *InputError) Error() string        { return e.Detail }
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func Invalidf(format string, args ...any) error {
	return &InputError{Detail: fmt.Sprintf(format, args...)}
}

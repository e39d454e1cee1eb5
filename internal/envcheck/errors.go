package envcheck

import (
	"errors"
	"fmt"
)

var (
	ErrAssertionMismatch = errors.New("assertion mismatch")
	ErrEmptyKey          = errors.New("check key is empty")
)

const (
	CodeAssertionMismatch = "ASSERTION_MISMATCH"
	CodeInvalidCheck      = "INVALID_CHECK"
)

// AssertionError reports an observed value that does not match the expected one.
type AssertionError struct {
	Code     string
	Key      string
	Expected string
	Observed string
	Present  bool
}

func (e *AssertionError) Error() string {
	if !e.Present {
		return fmt.Sprintf("%s: %s is not set (expected %q)", e.Code, e.Key, e.Expected)
	}
	return fmt.Sprintf("%s: %s = %q (expected %q)", e.Code, e.Key, e.Observed, e.Expected)
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrAssertionMismatch
}

func newAssertionError(key, expected, observed string, present bool) *AssertionError {
	return &AssertionError{
		Code:     CodeAssertionMismatch,
		Key:      key,
		Expected: expected,
		Observed: observed,
		Present:  present,
	}
}

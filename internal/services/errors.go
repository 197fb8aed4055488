package services

import "fmt"

// ValidationError marks failures caused by the caller's input or by missing
// region configuration. Handlers map it to a 4xx response; every other error
// is internal.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

package service

import "fmt"

// ValidationError marks input the caller can correct. Transports map it to a
// 400 response instead of a server failure.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

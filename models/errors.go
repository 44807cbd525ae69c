package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidStrikes     = errors.New("invalid strikes")
	ErrUnsupportedMeasure = errors.New("unsupported measure")
)

// ValidationError reports a rejected constructor argument together with the
// values that caused it.
type ValidationError struct {
	Field  string
	Values []float64
	Reason string
	Err    error
}

func NewInputError(field string, value float64, reason string) *ValidationError {
	return &ValidationError{Field: field, Values: []float64{value}, Reason: reason, Err: ErrInvalidInput}
}

func NewStrikeError(reason string, strikes ...float64) *ValidationError {
	return &ValidationError{Field: "strikes", Values: strikes, Reason: reason, Err: ErrInvalidStrikes}
}

func (e *ValidationError) Error() string {
	vals := make([]string, len(e.Values))
	for i, v := range e.Values {
		vals[i] = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%s: %s %s, got %s", e.Err, e.Field, e.Reason, strings.Join(vals, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

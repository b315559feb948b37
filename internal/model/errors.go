package model

import (
	"fmt"
)

// ValidationError reports malformed or missing client input
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a storage row cannot be mapped back into a Todo
type DecodeError struct {
	Column string
	Err    error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode column %q: %v", e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// package repository provides data access and error types
package repository

import (
	"errors"
	"fmt"
)

var errDuplicateID = errors.New("duplicate todo id")

// ErrTodoNotFound is returned when a todo with the specified ID does not exist
type ErrTodoNotFound struct {
	ID string
}

// Error implements the error interface
func (e ErrTodoNotFound) Error() string {
	return fmt.Sprintf("todo with id %s not found", e.ID)
}

// StorageError wraps any failure of the underlying store: connection problems,
// constraint violations, unexpected affected-row counts and undecodable rows.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, an ErrTodoNotFound
func IsNotFound(err error) bool {
	var notFound ErrTodoNotFound
	return errors.As(err, &notFound)
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// rowsAffectedErr maps the affected-row count of a single-row mutation to the error
// taxonomy. Zero rows is a not-found for delete and a storage failure for insert.
func rowsAffectedErr(op, id string, n int64) error {
	switch {
	case n == 1:
		return nil
	case n == 0 && op == "delete":
		return ErrTodoNotFound{ID: id}
	default:
		return &StorageError{Op: op, Err: fmt.Errorf("expected 1 row affected, got %d", n)}
	}
}

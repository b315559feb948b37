package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DueLayout is the textual layout used to persist due timestamps
const DueLayout = time.RFC3339Nano

// Columns lists the persisted columns of a todo in the order adapters select them
var Columns = []string{"id", "title", "completed", "due"}

var errMissingColumn = errors.New("column missing from row")

// TodoFromRow reconstructs a Todo from a storage row. Values are looked up by column
// name so the mapping does not depend on the order the store returns them in.
func TodoFromRow(columns []string, values []any) (Todo, error) {
	if len(columns) != len(values) {
		return Todo{}, &DecodeError{
			Column: "*",
			Err:    fmt.Errorf("got %d values for %d columns", len(values), len(columns)),
		}
	}

	byName := make(map[string]any, len(columns))
	for i, name := range columns {
		byName[name] = values[i]
	}

	var (
		todo Todo
		err  error
	)

	if todo.ID, err = decodeID(byName); err != nil {
		return Todo{}, err
	}
	if todo.Title, err = decodeTitle(byName); err != nil {
		return Todo{}, err
	}
	if todo.Completed, err = decodeCompleted(byName); err != nil {
		return Todo{}, err
	}
	if todo.Due, err = decodeDue(byName); err != nil {
		return Todo{}, err
	}

	return todo, nil
}

func lookup(row map[string]any, column string) (any, error) {
	v, ok := row[column]
	if !ok {
		return nil, &DecodeError{Column: column, Err: errMissingColumn}
	}
	return v, nil
}

func decodeID(row map[string]any) (uuid.UUID, error) {
	v, err := lookup(row, "id")
	if err != nil {
		return uuid.Nil, err
	}

	var s string
	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case string:
		s = id
	case []byte:
		s = string(id)
	default:
		return uuid.Nil, &DecodeError{Column: "id", Err: fmt.Errorf("unexpected type %T", v)}
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &DecodeError{Column: "id", Err: err}
	}
	return id, nil
}

func decodeTitle(row map[string]any) (string, error) {
	v, err := lookup(row, "title")
	if err != nil {
		return "", err
	}

	switch title := v.(type) {
	case string:
		return title, nil
	case []byte:
		return string(title), nil
	default:
		return "", &DecodeError{Column: "title", Err: fmt.Errorf("unexpected type %T", v)}
	}
}

func decodeCompleted(row map[string]any) (bool, error) {
	v, err := lookup(row, "completed")
	if err != nil {
		return false, err
	}

	var n int64
	switch c := v.(type) {
	case bool:
		return c, nil
	case int64:
		n = c
	case int32:
		n = int64(c)
	case int16:
		n = int64(c)
	case int:
		n = int64(c)
	default:
		return false, &DecodeError{Column: "completed", Err: fmt.Errorf("unexpected type %T", v)}
	}

	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &DecodeError{Column: "completed", Err: fmt.Errorf("value %d is not 0 or 1", n)}
	}
}

func decodeDue(row map[string]any) (*time.Time, error) {
	v, err := lookup(row, "due")
	if err != nil {
		return nil, err
	}

	var s string
	switch due := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &due, nil
	case string:
		s = due
	case []byte:
		s = string(due)
	default:
		return nil, &DecodeError{Column: "due", Err: fmt.Errorf("unexpected type %T", v)}
	}

	t, err := time.Parse(DueLayout, s)
	if err != nil {
		return nil, &DecodeError{Column: "due", Err: err}
	}
	return &t, nil
}

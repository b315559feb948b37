// package model contains the data models for the todo application
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Todo represents a todo item in the system
type Todo struct {
	ID        uuid.UUID  `json:"id" doc:"Unique identifier for the todo item" example:"123e4567-e89b-12d3-a456-426614174000"`
	Title     string     `json:"title" doc:"Title of the todo item" example:"Buy groceries"`
	Completed bool       `json:"completed" doc:"Whether the todo item is completed" example:"false"`
	Due       *time.Time `json:"due" doc:"When the todo item is due, null when unset" example:"2023-01-01T12:00:00Z"`
}

// CreateTodoRequest is used when creating a new todo item
type CreateTodoRequest struct {
	Title string     `json:"title" doc:"Title of the todo item" example:"Buy groceries"`
	Due   *time.Time `json:"due,omitempty" doc:"Optional due date" example:"2023-01-01T12:00:00Z"`
}

// TodoResponse is used for responses with a single todo item
type TodoResponse struct {
	Todo Todo `json:"todo" doc:"A todo item"`
}

// TodoListResponse is used for responses with multiple todo items
type TodoListResponse struct {
	Todos []Todo `json:"todos" doc:"List of todo items"`
}

// CreatedResponse is the empty acknowledgement returned by a successful create
type CreatedResponse struct{}

// ErrorResponse represents an error returned by the API
type ErrorResponse struct {
	Error string `json:"error" doc:"Error message" example:"todo not found"`
}

// NewTodo builds a fresh todo from a create request. The id is generated here and
// completed always starts out false.
func NewTodo(req CreateTodoRequest) (Todo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return Todo{}, &ValidationError{Field: "title", Message: "title is required"}
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return Todo{}, err
	}

	return Todo{
		ID:        id,
		Title:     req.Title,
		Completed: false,
		Due:       req.Due,
	}, nil
}

// ParseID parses the canonical string form of a todo id
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &ValidationError{Field: "id", Message: "malformed todo id", Err: err}
	}
	return id, nil
}

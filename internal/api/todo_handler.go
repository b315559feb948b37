// package api provides the HTTP API for the application
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/repository"
)

const maxBodyBytes = 1 << 20

// TodoHandler handles HTTP requests for todo operations
type TodoHandler struct {
	todoService TodoService
	logger      *slog.Logger
}

// NewTodoHandler creates a new todo handler with the given service
func NewTodoHandler(todoService TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListTodos(r.Context())
	if err != nil {
		h.logger.Error("error listing todos", "error", err)
		writeError(w, "error listing todos", http.StatusInternalServerError)
		return
	}

	if todos == nil {
		todos = []model.Todo{}
	}

	writeJSON(w, model.TodoListResponse{Todos: todos}, http.StatusOK)
}

// GetTodo handles GET /todos/{id}
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	todo, err := h.todoService.GetTodo(r.Context(), id)
	if err != nil {
		if isMissing(err) {
			writeError(w, "todo not found", http.StatusNotFound)
			return
		}
		h.logger.Error("error getting todo", "id", id, "error", err)
		writeError(w, "error getting todo", http.StatusInternalServerError)
		return
	}

	writeJSON(w, model.TodoResponse{Todo: todo}, http.StatusOK)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, "invalid request format", http.StatusBadRequest)
		return
	}

	req, err := decodeCreateTodoRequest(body)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	todo, err := h.todoService.CreateTodo(r.Context(), req)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(w, verr)
			return
		}
		h.logger.Error("error creating todo", "error", err)
		writeError(w, "error creating todo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/todos/"+todo.ID.String())
	writeJSON(w, model.CreatedResponse{}, http.StatusCreated)
}

// DeleteTodo handles DELETE /todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.todoService.DeleteTodo(r.Context(), id)
	if err != nil {
		if isMissing(err) {
			writeError(w, "todo not found", http.StatusNotFound)
			return
		}
		h.logger.Error("error deleting todo", "id", id, "error", err)
		writeError(w, "error deleting todo", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// isMissing reports whether err means the addressed todo does not exist. A
// malformed id can never match a record, so it is treated the same way.
func isMissing(err error) bool {
	var verr *model.ValidationError
	return repository.IsNotFound(err) || errors.As(err, &verr)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
	}
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: message,
	})
}

// writeValidationError writes a 400 carrying only the validation message
func writeValidationError(w http.ResponseWriter, err error) {
	message := "invalid request format"

	var verr *model.ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		message = verr.Message
	}

	writeError(w, message, http.StatusBadRequest)
}

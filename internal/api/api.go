// package api provides the HTTP API for the application
package api

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/pkg/router"
)

// Version is reported in the generated OpenAPI document
const Version = "1.0.0"

// TodoService defines the minimal interface needed by the API
type TodoService interface {
	// ListTodos returns all todos
	ListTodos(ctx context.Context) ([]model.Todo, error)

	// GetTodo returns a todo by ID
	GetTodo(ctx context.Context, id string) (model.Todo, error)

	// CreateTodo creates a new todo
	CreateTodo(ctx context.Context, req model.CreateTodoRequest) (model.Todo, error)

	// DeleteTodo deletes a todo
	DeleteTodo(ctx context.Context, id string) error
}

// API holds the components needed to register routes
type API struct {
	router      *router.DocRouter
	todoHandler *TodoHandler
}

// NewRouter creates a new router with all routes configured
func NewRouter(todoService TodoService, logger *slog.Logger) *router.DocRouter {
	r := router.NewDocRouter("Todo API",
		"Create, list, fetch and delete todo items",
		Version,
	).
		WithTag("Todos", "Operations related to todo items").
		WithTag("Core", "Core API endpoints")

	// Add middlewares, outermost first
	r.Use(
		recovererMiddleware(logger),
		loggerMiddleware(logger),
		tracingMiddleware("todo-api"),
		metricsMiddleware(otel.GetMeterProvider()),
	)

	api := &API{router: r, todoHandler: NewTodoHandler(todoService, logger)}
	api.registerRoutes()

	return r
}

// registerRoutes configures all API routes with documentation
func (api *API) registerRoutes() {
	errSchema := &model.ErrorResponse{}

	api.router.Route(http.MethodGet, "/{$}", homeHandler).
		WithName("Home").
		WithDescription("Plain-text greeting").
		WithTags("Core").
		Register()

	api.router.Route(http.MethodGet, "/health", healthHandler).
		WithName("Health Check").
		WithDescription("API health check endpoint").
		WithTags("Core").
		Register()

	api.router.Route(http.MethodGet, "/openapi.json", api.router.ServeOpenAPI).
		WithName("OpenAPI").
		WithDescription("This document").
		WithTags("Core").
		Register()

	api.router.Route(http.MethodGet, "/todos", api.todoHandler.ListTodos).
		WithName("List Todos").
		WithDescription("Get all todo items").
		WithResponse(http.StatusOK, &model.TodoListResponse{}).
		WithErrorResponse(http.StatusInternalServerError, "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()

	api.router.Route(http.MethodPost, "/todos", api.todoHandler.CreateTodo).
		WithName("Create Todo").
		WithDescription("Create a new todo item. The new item's location is returned in the Location header.").
		WithRequest(&model.CreateTodoRequest{}).
		WithResponse(http.StatusCreated, &model.CreatedResponse{}).
		WithErrorResponse(http.StatusBadRequest, "Bad Request", errSchema,
			router.Example{
				Name:  "missing title",
				Value: `{"error": "title is required"}`,
			}).
		WithErrorResponse(http.StatusInternalServerError, "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()

	api.router.Route(http.MethodGet, "/todos/{id}", api.todoHandler.GetTodo).
		WithName("Get Todo").
		WithDescription("Get a todo item by ID").
		WithResponse(http.StatusOK, &model.TodoResponse{}).
		WithErrorResponse(http.StatusNotFound, "Not Found", errSchema,
			router.Example{
				Name:  "unknown id",
				Value: `{"error": "todo not found"}`,
			}).
		WithErrorResponse(http.StatusInternalServerError, "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()

	api.router.Route(http.MethodDelete, "/todos/{id}", api.todoHandler.DeleteTodo).
		WithName("Delete Todo").
		WithDescription("Delete a todo item").
		WithResponse(http.StatusNoContent, nil).
		WithErrorResponse(http.StatusNotFound, "Not Found", errSchema).
		WithErrorResponse(http.StatusInternalServerError, "Internal Server Error", errSchema).
		WithTags("Todos").
		Register()
}

// homeHandler handles the home page
func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("Hello"))
}

// healthHandler handles the health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

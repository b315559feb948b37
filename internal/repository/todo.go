// package repository provides data access interfaces and implementations
package repository

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cirocosta/todo-api/internal/model"
)

// TodoRepository defines the interface for todo data access.
//
// Implementations serialize every operation through a single lock around one store
// connection, so no two operations ever touch the store at the same time.
type TodoRepository interface {
	// FindAll returns all todos, never nil
	FindAll(ctx context.Context) ([]model.Todo, error)

	// FindByID returns a specific todo by ID
	FindByID(ctx context.Context, id string) (model.Todo, error)

	// Create adds a new todo
	Create(ctx context.Context, todo model.Todo) error

	// Delete removes a todo
	Delete(ctx context.Context, id string) error

	// Close releases the underlying store
	Close() error
}

var tracer = otel.Tracer("github.com/cirocosta/todo-api/internal/repository")

// startSpan opens a span for a repository operation
func startSpan(ctx context.Context, backend, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", backend)),
	)
}

// endSpan records err on the span, if any, and ends it. Not-found is an expected
// outcome and is not marked as an error.
func endSpan(span trace.Span, err error) {
	if err != nil && !IsNotFound(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// InMemoryTodoRepository implements TodoRepository with an in-memory map
type InMemoryTodoRepository struct {
	todos map[string]model.Todo
	mutex sync.Mutex
}

// NewInMemoryTodoRepository creates a new, empty in-memory todo repository
func NewInMemoryTodoRepository() *InMemoryTodoRepository {
	return &InMemoryTodoRepository{
		todos: make(map[string]model.Todo),
	}
}

// FindAll returns all todos
func (r *InMemoryTodoRepository) FindAll(ctx context.Context) (todos []model.Todo, err error) {
	_, span := startSpan(ctx, "memory", "find_all")
	defer func() { endSpan(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	todos = make([]model.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		todos = append(todos, todo)
	}

	return todos, nil
}

// FindByID returns a specific todo by ID
func (r *InMemoryTodoRepository) FindByID(ctx context.Context, id string) (todo model.Todo, err error) {
	_, span := startSpan(ctx, "memory", "find_by_id")
	defer func() { endSpan(span, err) }()

	uid, err := model.ParseID(id)
	if err != nil {
		return model.Todo{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	todo, exists := r.todos[uid.String()]
	if !exists {
		return model.Todo{}, ErrTodoNotFound{ID: id}
	}

	return todo, nil
}

// Create adds a new todo
func (r *InMemoryTodoRepository) Create(ctx context.Context, todo model.Todo) (err error) {
	_, span := startSpan(ctx, "memory", "create")
	defer func() { endSpan(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := todo.ID.String()
	if _, exists := r.todos[key]; exists {
		return storageErr("insert", errDuplicateID)
	}

	r.todos[key] = todo
	return nil
}

// Delete removes a todo
func (r *InMemoryTodoRepository) Delete(ctx context.Context, id string) (err error) {
	_, span := startSpan(ctx, "memory", "delete")
	defer func() { endSpan(span, err) }()

	uid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := uid.String()
	if _, exists := r.todos[key]; !exists {
		return ErrTodoNotFound{ID: id}
	}

	delete(r.todos, key)
	return nil
}

// Close is a no-op for the in-memory store
func (r *InMemoryTodoRepository) Close() error {
	return nil
}

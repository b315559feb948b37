// package service implements business logic for the application
package service

import (
	"context"
	"fmt"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/repository"
)

// TodoService handles business logic for todo operations
type TodoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a new todo service with the given repository
func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{
		repo: repo,
	}
}

// ListTodos returns all todos
func (s *TodoService) ListTodos(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// GetTodo returns a todo by ID
func (s *TodoService) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// CreateTodo creates a new todo
func (s *TodoService) CreateTodo(ctx context.Context, req model.CreateTodoRequest) (model.Todo, error) {
	todo, err := model.NewTodo(req)
	if err != nil {
		return model.Todo{}, err
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo deletes a todo
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

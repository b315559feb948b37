package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cirocosta/todo-api/internal/model"
	"github.com/cirocosta/todo-api/internal/repository"
)

// mockTodoRepository is a mock implementation of repository.TodoRepository
type mockTodoRepository struct {
	mock.Mock
}

func (m *mockTodoRepository) FindAll(ctx context.Context) ([]model.Todo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *mockTodoRepository) FindByID(ctx context.Context, id string) (model.Todo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *mockTodoRepository) Create(ctx context.Context, todo model.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *mockTodoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTodoRepository) Close() error {
	return m.Called().Error(0)
}

func TestCreateTodo(t *testing.T) {
	t.Parallel()

	t.Run("persists a fresh todo", func(t *testing.T) {
		t.Parallel()

		repo := new(mockTodoRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(todo model.Todo) bool {
			return todo.Title == "buy milk" && !todo.Completed && todo.ID != uuid.Nil
		})).Return(nil)

		todo, err := NewTodoService(repo).CreateTodo(context.Background(), model.CreateTodoRequest{Title: "buy milk"})
		require.NoError(t, err)
		assert.Equal(t, "buy milk", todo.Title)
		assert.Nil(t, todo.Due)

		repo.AssertExpectations(t)
	})

	t.Run("missing title never reaches storage", func(t *testing.T) {
		t.Parallel()

		repo := new(mockTodoRepository)

		_, err := NewTodoService(repo).CreateTodo(context.Background(), model.CreateTodoRequest{})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		t.Parallel()

		repo := new(mockTodoRepository)
		cause := &repository.StorageError{Op: "insert", Err: errors.New("disk full")}
		repo.On("Create", mock.Anything, mock.Anything).Return(cause)

		_, err := NewTodoService(repo).CreateTodo(context.Background(), model.CreateTodoRequest{Title: "x"})
		var storageErr *repository.StorageError
		require.ErrorAs(t, err, &storageErr)
	})
}

func TestGetTodo(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	repo := new(mockTodoRepository)
	repo.On("FindByID", mock.Anything, id).Return(model.Todo{}, repository.ErrTodoNotFound{ID: id})

	_, err := NewTodoService(repo).GetTodo(context.Background(), id)
	assert.True(t, repository.IsNotFound(err))

	repo.AssertExpectations(t)
}

func TestListTodos(t *testing.T) {
	t.Parallel()

	todos := []model.Todo{{ID: uuid.New(), Title: "one"}}
	repo := new(mockTodoRepository)
	repo.On("FindAll", mock.Anything).Return(todos, nil)

	got, err := NewTodoService(repo).ListTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, todos, got)
}

func TestDeleteTodo(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	repo := new(mockTodoRepository)
	repo.On("Delete", mock.Anything, id).Return(repository.ErrTodoNotFound{ID: id})

	err := NewTodoService(repo).DeleteTodo(context.Background(), id)
	assert.True(t, repository.IsNotFound(err))
}

package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/cirocosta/todo-api/internal/model"
)

const (
	pgInsert     = `INSERT INTO todos (id, title, completed, due) VALUES ($1, $2, $3, $4)`
	pgSelectAll  = `SELECT id, title, completed, due FROM todos`
	pgSelectByID = `SELECT id, title, completed, due FROM todos WHERE id = $1`
	pgDeleteByID = `DELETE FROM todos WHERE id = $1`
)

// PostgresTodoRepository implements TodoRepository on a single pgx connection.
// pgx.Conn is not safe for concurrent use, every operation holds the mutex.
type PostgresTodoRepository struct {
	conn  *pgx.Conn
	mutex sync.Mutex
}

// NewPostgresTodoRepository connects to dsn and makes sure the todos table exists
func NewPostgresTodoRepository(ctx context.Context, dsn string) (*PostgresTodoRepository, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("problem connecting to db: %w", err)
	}

	if _, err := conn.Exec(ctx, createTableSQL); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("create todos table: %w", err)
	}

	return &PostgresTodoRepository{conn: conn}, nil
}

// FindAll returns all todos
func (r *PostgresTodoRepository) FindAll(ctx context.Context) (todos []model.Todo, err error) {
	ctx, span := startSpan(ctx, "postgresql", "find_all")
	defer func() { endSpan(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	rows, err := r.conn.Query(ctx, pgSelectAll)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	todos = []model.Todo{}
	for rows.Next() {
		todo, err := decodePgRow(rows)
		if err != nil {
			return nil, storageErr("list", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}

	return todos, nil
}

// FindByID returns a specific todo by ID
func (r *PostgresTodoRepository) FindByID(ctx context.Context, id string) (todo model.Todo, err error) {
	ctx, span := startSpan(ctx, "postgresql", "find_by_id")
	defer func() { endSpan(span, err) }()

	uid, err := model.ParseID(id)
	if err != nil {
		return model.Todo{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	rows, err := r.conn.Query(ctx, pgSelectByID, uid.String())
	if err != nil {
		return model.Todo{}, storageErr("find", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Todo{}, storageErr("find", err)
		}
		return model.Todo{}, ErrTodoNotFound{ID: id}
	}

	todo, err = decodePgRow(rows)
	if err != nil {
		return model.Todo{}, storageErr("find", err)
	}

	return todo, nil
}

// Create inserts a new todo row
func (r *PostgresTodoRepository) Create(ctx context.Context, todo model.Todo) (err error) {
	ctx, span := startSpan(ctx, "postgresql", "create")
	defer func() { endSpan(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	tag, err := r.conn.Exec(ctx, pgInsert, insertArgs(todo)...)
	if err != nil {
		return storageErr("insert", err)
	}

	return rowsAffectedErr("insert", todo.ID.String(), tag.RowsAffected())
}

// Delete removes a todo
func (r *PostgresTodoRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "postgresql", "delete")
	defer func() { endSpan(span, err) }()

	uid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	tag, err := r.conn.Exec(ctx, pgDeleteByID, uid.String())
	if err != nil {
		return storageErr("delete", err)
	}

	return rowsAffectedErr("delete", id, tag.RowsAffected())
}

// Close closes the connection
func (r *PostgresTodoRepository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.conn.Close(context.Background())
}

func decodePgRow(rows pgx.Rows) (model.Todo, error) {
	values, err := rows.Values()
	if err != nil {
		return model.Todo{}, err
	}

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	return model.TodoFromRow(columns, values)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/cirocosta/todo-api/internal/model"
)

const (
	sqliteInsert     = `INSERT INTO todos (id, title, completed, due) VALUES (?, ?, ?, ?)`
	sqliteSelectAll  = `SELECT id, title, completed, due FROM todos`
	sqliteSelectByID = `SELECT id, title, completed, due FROM todos WHERE id = ?`
	sqliteDeleteByID = `DELETE FROM todos WHERE id = ?`
)

// SQLiteTodoRepository implements TodoRepository on a single file-backed SQLite
// connection guarded by a mutex
type SQLiteTodoRepository struct {
	db    *sql.DB
	conn  *sql.Conn
	mutex sync.Mutex
}

// NewSQLiteTodoRepository opens (or creates) the database file at path, pins one
// connection and makes sure the todos table exists
func NewSQLiteTodoRepository(ctx context.Context, path string) (*SQLiteTodoRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to sqlite database %s: %w", path, err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		db.Close()
		return nil, fmt.Errorf("configure sqlite database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, createTableSQL); err != nil {
		conn.Close()
		db.Close()
		return nil, fmt.Errorf("create todos table: %w", err)
	}

	return &SQLiteTodoRepository{db: db, conn: conn}, nil
}

// FindAll returns all todos in whatever order the store yields them
func (r *SQLiteTodoRepository) FindAll(ctx context.Context) (todos []model.Todo, err error) {
	ctx, span := startSpan(ctx, "sqlite", "find_all")
	defer func() { endSpan(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	rows, err := r.conn.QueryContext(ctx, sqliteSelectAll)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	todos = []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
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
func (r *SQLiteTodoRepository) FindByID(ctx context.Context, id string) (todo model.Todo, err error) {
	ctx, span := startSpan(ctx, "sqlite", "find_by_id")
	defer func() { endSpan(span, err) }()

	uid, err := model.ParseID(id)
	if err != nil {
		return model.Todo{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	rows, err := r.conn.QueryContext(ctx, sqliteSelectByID, uid.String())
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

	todo, err = scanTodo(rows)
	if err != nil {
		return model.Todo{}, storageErr("find", err)
	}

	return todo, nil
}

// Create inserts a new todo row
func (r *SQLiteTodoRepository) Create(ctx context.Context, todo model.Todo) (err error) {
	ctx, span := startSpan(ctx, "sqlite", "create")
	defer func() { endSpan(span, err) }()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	res, err := r.conn.ExecContext(ctx, sqliteInsert, insertArgs(todo)...)
	if err != nil {
		return storageErr("insert", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("insert", err)
	}

	return rowsAffectedErr("insert", todo.ID.String(), n)
}

// Delete removes a todo
func (r *SQLiteTodoRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "sqlite", "delete")
	defer func() { endSpan(span, err) }()

	uid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	res, err := r.conn.ExecContext(ctx, sqliteDeleteByID, uid.String())
	if err != nil {
		return storageErr("delete", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete", err)
	}

	return rowsAffectedErr("delete", id, n)
}

// Close releases the pinned connection and the database handle
func (r *SQLiteTodoRepository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	connErr := r.conn.Close()
	if err := r.db.Close(); err != nil {
		return err
	}
	return connErr
}

// scanTodo decodes the current row by column name
func scanTodo(rows *sql.Rows) (model.Todo, error) {
	columns, err := rows.Columns()
	if err != nil {
		return model.Todo{}, err
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return model.Todo{}, err
	}

	return model.TodoFromRow(columns, values)
}

package repository

import (
	"github.com/cirocosta/todo-api/internal/model"
)

// createTableSQL is shared by the SQL adapters and is safe to run on every start
const createTableSQL = `CREATE TABLE IF NOT EXISTS todos (
	id        TEXT PRIMARY KEY,
	title     TEXT NOT NULL,
	completed INTEGER NOT NULL CHECK (completed IN (0, 1)),
	due       TEXT NULL
)`

// insertArgs flattens a todo into its persisted column values, in model.Columns order
func insertArgs(todo model.Todo) []any {
	completed := 0
	if todo.Completed {
		completed = 1
	}

	var due any
	if todo.Due != nil {
		due = todo.Due.Format(model.DueLayout)
	}

	return []any{todo.ID.String(), todo.Title, completed, due}
}

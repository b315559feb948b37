package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoFromRow(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	due := time.Date(2024, time.May, 4, 18, 0, 0, 0, time.UTC)

	for name, tc := range map[string]struct {
		columns    []string
		values     []any
		want       Todo
		wantColumn string
	}{
		"sqlite values": {
			columns: []string{"id", "title", "completed", "due"},
			values:  []any{id.String(), "buy milk", int64(0), nil},
			want:    Todo{ID: id, Title: "buy milk"},
		},
		"columns out of order": {
			columns: []string{"due", "completed", "title", "id"},
			values:  []any{due.Format(DueLayout), int64(1), "walk dog", id.String()},
			want:    Todo{ID: id, Title: "walk dog", Completed: true, Due: &due},
		},
		"postgres values": {
			columns: []string{"id", "title", "completed", "due"},
			values:  []any{id.String(), "buy milk", int32(0), due},
			want:    Todo{ID: id, Title: "buy milk", Due: &due},
		},
		"byte slices": {
			columns: []string{"id", "title", "completed", "due"},
			values:  []any{[]byte(id.String()), []byte("buy milk"), int64(0), []byte(due.Format(DueLayout))},
			want:    Todo{ID: id, Title: "buy milk", Due: &due},
		},
		"extra columns are ignored": {
			columns: []string{"id", "title", "completed", "due", "rowid"},
			values:  []any{id.String(), "buy milk", int64(0), nil, int64(7)},
			want:    Todo{ID: id, Title: "buy milk"},
		},
		"missing column": {
			columns:    []string{"id", "title", "completed"},
			values:     []any{id.String(), "buy milk", int64(0)},
			wantColumn: "due",
		},
		"malformed id": {
			columns:    []string{"id", "title", "completed", "due"},
			values:     []any{"nope", "buy milk", int64(0), nil},
			wantColumn: "id",
		},
		"title of wrong type": {
			columns:    []string{"id", "title", "completed", "due"},
			values:     []any{id.String(), int64(3), int64(0), nil},
			wantColumn: "title",
		},
		"completed out of range": {
			columns:    []string{"id", "title", "completed", "due"},
			values:     []any{id.String(), "buy milk", int64(2), nil},
			wantColumn: "completed",
		},
		"completed of wrong type": {
			columns:    []string{"id", "title", "completed", "due"},
			values:     []any{id.String(), "buy milk", "false", nil},
			wantColumn: "completed",
		},
		"unparsable due": {
			columns:    []string{"id", "title", "completed", "due"},
			values:     []any{id.String(), "buy milk", int64(0), "tomorrow"},
			wantColumn: "due",
		},
		"value count mismatch": {
			columns:    []string{"id", "title", "completed", "due"},
			values:     []any{id.String()},
			wantColumn: "*",
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := TodoFromRow(tc.columns, tc.values)
			if tc.wantColumn != "" {
				var derr *DecodeError
				require.ErrorAs(t, err, &derr)
				assert.Equal(t, tc.wantColumn, derr.Column)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("todo mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

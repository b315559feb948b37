package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level    string
		format   string
		contains []string
		excludes []string
	}{
		"text": {
			level:    "info",
			format:   "text",
			contains: []string{"INFO", "http request", "status=201"},
			excludes: []string{"hidden"},
		},
		"logfmt": {
			level:    "info",
			format:   "logfmt",
			contains: []string{"level=info", `msg="http request"`, "status=201"},
		},
		"default format": {
			level:    "INFO",
			format:   "",
			contains: []string{"http request"},
		},
		"debug shows everything": {
			level:    "debug",
			format:   "text",
			contains: []string{"hidden", "http request"},
		},
		"error hides info": {
			level:    "error",
			format:   "text",
			excludes: []string{"hidden", "http request"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, err := New(&buf, tt.level, tt.format)
			require.NoError(t, err)

			logger.Debug("hidden")
			logger.Info("http request", "status", 201)

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "path", "/todos")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "/todos", record["path"])
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.ErrorContains(t, err, "parse log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.EqualError(t, err, `unknown log format "xml"`)
}

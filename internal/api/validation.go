package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/cirocosta/todo-api/internal/model"
)

//go:embed schemas/create_todo.json
var createTodoSchemaJSON string

var createTodoSchema = mustCompileSchema("mem:///create_todo.json", createTodoSchemaJSON)

func mustCompileSchema(url, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true

	if err := compiler.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Errorf("add schema resource %s: %w", url, err))
	}

	return compiler.MustCompile(url)
}

// decodeCreateTodoRequest validates body against the create schema and decodes it
func decodeCreateTodoRequest(body []byte) (model.CreateTodoRequest, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return model.CreateTodoRequest{}, &model.ValidationError{Message: "invalid request format", Err: err}
	}

	if err := createTodoSchema.Validate(doc); err != nil {
		return model.CreateTodoRequest{}, schemaValidationError(err)
	}

	var req model.CreateTodoRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return model.CreateTodoRequest{}, &model.ValidationError{Message: "invalid request format", Err: err}
	}

	return req, nil
}

// schemaValidationError turns a schema failure into a ValidationError naming the
// first offending field
func schemaValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &model.ValidationError{Message: "invalid request format", Err: err}
	}

	leaf := firstLeaf(ve)
	switch {
	case leaf.InstanceLocation == "/title",
		strings.HasSuffix(leaf.KeywordLocation, "/required"):
		return &model.ValidationError{Field: "title", Message: "title is required", Err: err}
	case leaf.InstanceLocation == "/due":
		return &model.ValidationError{Field: "due", Message: "due must be an RFC 3339 timestamp or null", Err: err}
	default:
		return &model.ValidationError{Message: "invalid request format", Err: err}
	}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

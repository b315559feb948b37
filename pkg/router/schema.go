package router

import (
	"encoding"
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"time"
)

var (
	timeType          = reflect.TypeOf(time.Time{})
	rawMessageType    = reflect.TypeOf(json.RawMessage{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// schemaRegistry collects named object schemas for components.schemas
type schemaRegistry struct {
	schemas map[string]map[string]any
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{schemas: make(map[string]map[string]any)}
}

// ref returns a $ref to the named schema for t, generating and registering it, and
// any named struct it contains, on first use. Anonymous types are inlined.
func (r *schemaRegistry) ref(t any) map[string]any {
	if t == nil {
		return nil
	}

	typ := reflect.TypeOf(t)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return r.schemaFor(typ)
}

// all returns a copy of the registered schemas
func (r *schemaRegistry) all() map[string]any {
	out := make(map[string]any, len(r.schemas))
	for name, schema := range r.schemas {
		out[name] = schema
	}
	return out
}

func (r *schemaRegistry) schemaFor(typ reflect.Type) map[string]any {
	if typ.Kind() == reflect.Ptr {
		return r.schemaFor(typ.Elem())
	}
	if schema := specialTypeSchema(typ); schema != nil {
		return schema
	}

	switch typ.Kind() {
	case reflect.Struct:
		if typ.Name() == "" {
			return r.structSchema(typ)
		}
		name := typ.Name()
		if _, seen := r.schemas[name]; !seen {
			// placeholder first so self-referencing types terminate
			r.schemas[name] = map[string]any{"type": "object"}
			r.schemas[name] = r.structSchema(typ)
		}
		return map[string]any{"$ref": "#/components/schemas/" + name}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": r.schemaFor(typ.Elem()),
		}
	case reflect.Map:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": r.schemaFor(typ.Elem()),
		}
	}

	if schema := basicTypeSchema(typ.Kind()); schema != nil {
		return schema
	}
	return map[string]any{"type": "object"}
}

// structSchema builds an object schema from exported, json-visible fields
func (r *schemaRegistry) structSchema(typ reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := []string{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, isRequired := parseJSONTag(jsonTag, field.Name)
		if isRequired {
			required = append(required, name)
		}

		schema := r.schemaFor(field.Type)
		if _, isRef := schema["$ref"]; !isRef {
			schema = withFieldMetadata(schema, field)
		}
		properties[name] = schema
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

// parseJSONTag extracts the property name and whether it is always present
func parseJSONTag(jsonTag, fieldName string) (string, bool) {
	if jsonTag == "" {
		return fieldName, true
	}

	parts := strings.Split(jsonTag, ",")
	name := parts[0]
	if name == "" {
		name = fieldName
	}

	return name, !slices.Contains(parts[1:], "omitempty")
}

// withFieldMetadata copies doc, example and enum tags into a fresh schema map, and
// marks pointer fields nullable
func withFieldMetadata(schema map[string]any, field reflect.StructField) map[string]any {
	out := make(map[string]any, len(schema)+3)
	for k, v := range schema {
		out[k] = v
	}

	if field.Type.Kind() == reflect.Ptr {
		out["nullable"] = true
	}
	if doc := field.Tag.Get("doc"); doc != "" {
		out["description"] = doc
	}
	if example := field.Tag.Get("example"); example != "" {
		out["example"] = example
	}
	if enum := field.Tag.Get("enum"); enum != "" {
		out["enum"] = strings.Split(enum, ",")
	}

	return out
}

// specialTypeSchema handles types whose JSON form differs from their Go kind
func specialTypeSchema(typ reflect.Type) map[string]any {
	switch {
	case typ == timeType:
		return map[string]any{"type": "string", "format": "date-time"}
	case typ == rawMessageType:
		return map[string]any{"type": "object"}
	case typ.Implements(textMarshalerType) || reflect.PointerTo(typ).Implements(textMarshalerType):
		schema := map[string]any{"type": "string"}
		if typ.PkgPath() == "github.com/google/uuid" && typ.Name() == "UUID" {
			schema["format"] = "uuid"
		}
		return schema
	}
	return nil
}

// basicTypeSchema creates a schema for a basic Go kind
func basicTypeSchema(kind reflect.Kind) map[string]any {
	switch kind {
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.String:
		return map[string]any{"type": "string"}
	default:
		return nil
	}
}

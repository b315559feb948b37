package router

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type basicFields struct {
	String  string  `json:"string"`
	Int     int     `json:"int"`
	Bool    bool    `json:"bool"`
	Float   float64 `json:"float"`
	Pointer *string `json:"pointer,omitempty"`
	Skipped string  `json:"-"`
	hidden  string
}

type taggedFields struct {
	WithDoc     string `json:"withDoc" doc:"This is documentation"`
	WithExample string `json:"withExample" example:"Example value"`
	WithEnum    string `json:"withEnum" enum:"a,b,c"`
}

type specialFields struct {
	ID      uuid.UUID       `json:"id"`
	Created time.Time       `json:"created"`
	Due     *time.Time      `json:"due"`
	Raw     json.RawMessage `json:"raw"`
}

type Node struct {
	Name     string `json:"name"`
	Parent   *Node  `json:"parent,omitempty"`
	Children []Node `json:"children"`
}

type Wrapper struct {
	Items  []ItemEntry          `json:"items"`
	ByName map[string]ItemEntry `json:"byName"`
	Counts map[string]int       `json:"counts"`
	Inline struct {
		X int `json:"x"`
	} `json:"inline"`
}

type ItemEntry struct {
	Value string `json:"value"`
}

func TestParseJSONTag(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		tag          string
		wantName     string
		wantRequired bool
	}{
		"empty tag":      {tag: "", wantName: "Field", wantRequired: true},
		"named":          {tag: "field", wantName: "field", wantRequired: true},
		"omitempty":      {tag: "field,omitempty", wantName: "field", wantRequired: false},
		"only omitempty": {tag: ",omitempty", wantName: "Field", wantRequired: false},
		"string option":  {tag: "field,string", wantName: "field", wantRequired: true},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			gotName, gotRequired := parseJSONTag(tc.tag, "Field")
			assert.Equal(t, tc.wantName, gotName)
			assert.Equal(t, tc.wantRequired, gotRequired)
		})
	}
}

func TestSchemaBasicFields(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	ref := registry.ref(basicFields{})

	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/basicFields"}, ref)

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"string":  map[string]any{"type": "string"},
			"int":     map[string]any{"type": "integer"},
			"bool":    map[string]any{"type": "boolean"},
			"float":   map[string]any{"type": "number"},
			"pointer": map[string]any{"type": "string", "nullable": true},
		},
		"required": []string{"string", "int", "bool", "float"},
	}
	if diff := cmp.Diff(want, registry.schemas["basicFields"]); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaTaggedFields(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	registry.ref(&taggedFields{})

	props := registry.schemas["taggedFields"]["properties"].(map[string]any)

	assert.Equal(t, map[string]any{"type": "string", "description": "This is documentation"}, props["withDoc"])
	assert.Equal(t, map[string]any{"type": "string", "example": "Example value"}, props["withExample"])
	assert.Equal(t, map[string]any{"type": "string", "enum": []string{"a", "b", "c"}}, props["withEnum"])
}

func TestSchemaSpecialTypes(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	registry.ref(specialFields{})

	props := registry.schemas["specialFields"]["properties"].(map[string]any)

	want := map[string]any{
		"id":      map[string]any{"type": "string", "format": "uuid"},
		"created": map[string]any{"type": "string", "format": "date-time"},
		"due":     map[string]any{"type": "string", "format": "date-time", "nullable": true},
		"raw":     map[string]any{"type": "object"},
	}
	if diff := cmp.Diff(want, props); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaSelfReference(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	registry.ref(Node{})

	props := registry.schemas["Node"]["properties"].(map[string]any)
	nodeRef := map[string]any{"$ref": "#/components/schemas/Node"}

	assert.Equal(t, nodeRef, props["parent"])
	assert.Equal(t, map[string]any{"type": "array", "items": nodeRef}, props["children"])
}

func TestSchemaCollections(t *testing.T) {
	t.Parallel()

	registry := newSchemaRegistry()
	registry.ref(Wrapper{})

	entryRef := map[string]any{"$ref": "#/components/schemas/ItemEntry"}
	props := registry.schemas["Wrapper"]["properties"].(map[string]any)

	assert.Equal(t, map[string]any{"type": "array", "items": entryRef}, props["items"])
	assert.Equal(t, map[string]any{"type": "object", "additionalProperties": entryRef}, props["byName"])
	assert.Equal(t, map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "integer"},
	}, props["counts"])

	inline := props["inline"].(map[string]any)
	assert.Equal(t, "object", inline["type"])
	assert.Contains(t, registry.schemas, "ItemEntry")
}

func TestSchemaRefNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newSchemaRegistry().ref(nil))
}

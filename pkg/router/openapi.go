package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// OpenAPI generates an OpenAPI 3 document describing every registered route
func (dr *DocRouter) OpenAPI() map[string]any {
	registry := newSchemaRegistry()

	doc := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       dr.title,
			"description": dr.description,
			"version":     dr.version,
		},
		"paths": generatePaths(dr.routes, registry),
		"components": map[string]any{
			"schemas": registry.all(),
		},
	}

	if len(dr.tags) > 0 {
		tags := make([]any, 0, len(dr.tags))
		for _, tag := range dr.tags {
			tags = append(tags, map[string]any{
				"name":        tag.Name,
				"description": tag.Description,
			})
		}
		doc["tags"] = tags
	}

	return doc
}

// OpenAPIJSON returns the indented JSON encoding of OpenAPI
func (dr *DocRouter) OpenAPIJSON() ([]byte, error) {
	data, err := json.MarshalIndent(dr.OpenAPI(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return data, nil
}

// ServeOpenAPI is an http.HandlerFunc serving the generated document
func (dr *DocRouter) ServeOpenAPI(w http.ResponseWriter, r *http.Request) {
	data, err := dr.OpenAPIJSON()
	if err != nil {
		http.Error(w, "error generating openapi document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// docPath converts a ServeMux pattern path into an OpenAPI path: the exact-match
// marker {$} is dropped and {name...} wildcards become {name}
func docPath(path string) string {
	path = strings.TrimSuffix(path, "{$}")
	return strings.ReplaceAll(path, "...}", "}")
}

// extractPathParams gets path parameter names from an OpenAPI path
func extractPathParams(path string) []string {
	var params []string
	for _, part := range strings.Split(path, "/") {
		if len(part) > 2 && part[0] == '{' && part[len(part)-1] == '}' {
			params = append(params, part[1:len(part)-1])
		}
	}
	return params
}

func generatePaths(routes []RouteInfo, registry *schemaRegistry) map[string]any {
	paths := map[string]any{}

	for _, route := range routes {
		path := docPath(route.Path)
		method := strings.ToLower(route.Method)

		item, ok := paths[path].(map[string]any)
		if !ok {
			item = map[string]any{}
			paths[path] = item
		}

		operation := map[string]any{
			"summary":     route.Name,
			"description": route.Description,
			"operationId": operationID(method, path),
			"responses":   generateResponses(route, registry),
		}

		if len(route.Tags) > 0 {
			operation["tags"] = route.Tags
		}

		if params := extractPathParams(path); len(params) > 0 {
			parameters := make([]any, 0, len(params))
			for _, name := range params {
				parameters = append(parameters, map[string]any{
					"name":        name,
					"in":          "path",
					"required":    true,
					"schema":      map[string]any{"type": "string"},
					"description": fmt.Sprintf("%s parameter", name),
				})
			}
			operation["parameters"] = parameters
		}

		if route.RequestType != nil {
			operation["requestBody"] = map[string]any{
				"description": fmt.Sprintf("request body for %s", route.Name),
				"required":    true,
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": registry.ref(route.RequestType),
					},
				},
			}
		}

		item[method] = operation
	}

	return paths
}

func operationID(method, path string) string {
	replacer := strings.NewReplacer("/", "_", "{", "", "}", "")
	return method + strings.TrimRight(replacer.Replace(path), "_")
}

func generateResponses(route RouteInfo, registry *schemaRegistry) map[string]any {
	responses := map[string]any{}

	for code, resp := range route.Responses {
		out := map[string]any{"description": resp.Description}

		content := map[string]any{}
		if resp.Schema != nil {
			content["schema"] = registry.ref(resp.Schema)
		}
		if len(resp.Examples) > 0 {
			examples := map[string]any{}
			for i, example := range resp.Examples {
				name := example.Name
				if name == "" {
					name = "example" + strconv.Itoa(i+1)
				}
				examples[name] = map[string]any{
					"value": example.Value,
				}
			}
			content["examples"] = examples
		}
		if len(content) > 0 {
			out["content"] = map[string]any{"application/json": content}
		}

		responses[code] = out
	}

	success := strconv.Itoa(route.SuccessStatus)
	if _, exists := responses[success]; !exists {
		out := map[string]any{"description": http.StatusText(route.SuccessStatus)}
		if route.ResponseType != nil {
			out["content"] = map[string]any{
				"application/json": map[string]any{
					"schema": registry.ref(route.ResponseType),
				},
			}
		}
		responses[success] = out
	}

	return responses
}

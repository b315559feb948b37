// package router provides a router wrapper that captures documentation data
package router

import (
	"net/http"
	"strconv"
)

// Middleware wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Example represents a named example response for documentation
type Example struct {
	Name  string // Key of the example in the generated document
	Value string // Example value as string
}

// RouteResponse represents a documented response for a specific HTTP status code
type RouteResponse struct {
	StatusCode  string    // HTTP status code (e.g., "200", "400")
	Description string    // Description of the response
	Schema      any       // Response schema/type (optional)
	Examples    []Example // Example responses (optional)
}

// RouteInfo stores documentation for a route
type RouteInfo struct {
	Method        string                   // HTTP method (GET, POST, etc.)
	Path          string                   // URL path, with {param} placeholders
	Name          string                   // Friendly name for the endpoint
	Description   string                   // Description of what the endpoint does
	RequestType   any                      // Example request type (for schema generation)
	ResponseType  any                      // Example success response type (for schema generation)
	SuccessStatus int                      // Status code of the success response
	Responses     map[string]RouteResponse // Map of HTTP status codes to error responses
	Tags          []string                 // Tags for grouping endpoints
}

// Tag describes a group of operations in the generated document
type Tag struct {
	Name        string
	Description string
}

// RouteConfig is a builder for route configuration
type RouteConfig struct {
	router *DocRouter
	info   RouteInfo
	h      http.HandlerFunc
}

// DocRouter wraps http.ServeMux to add documentation capabilities
type DocRouter struct {
	title       string
	description string
	version     string
	tags        []Tag

	mux        *http.ServeMux
	middleware []Middleware
	handler    http.Handler
	routes     []RouteInfo
}

// NewDocRouter creates a new documented router
func NewDocRouter(title, description, version string) *DocRouter {
	mux := http.NewServeMux()
	return &DocRouter{
		title:       title,
		description: description,
		version:     version,
		mux:         mux,
		handler:     mux,
		routes:      []RouteInfo{},
	}
}

// WithTag declares a tag for the generated document
func (dr *DocRouter) WithTag(name, description string) *DocRouter {
	dr.tags = append(dr.tags, Tag{Name: name, Description: description})
	return dr
}

// Route starts a route configuration chain
func (dr *DocRouter) Route(method, path string, handler http.HandlerFunc) *RouteConfig {
	return &RouteConfig{
		router: dr,
		h:      handler,
		info: RouteInfo{
			Method:        method,
			Path:          path,
			SuccessStatus: http.StatusOK,
			Responses:     make(map[string]RouteResponse),
		},
	}
}

// WithName adds a name to the route
func (rc *RouteConfig) WithName(name string) *RouteConfig {
	rc.info.Name = name
	return rc
}

// WithDescription adds a description to the route
func (rc *RouteConfig) WithDescription(description string) *RouteConfig {
	rc.info.Description = description
	return rc
}

// WithRequest adds a request type to the route
func (rc *RouteConfig) WithRequest(requestType any) *RouteConfig {
	rc.info.RequestType = requestType
	return rc
}

// WithResponse sets the success status code and response type of the route.
// A nil responseType documents a response without a body.
func (rc *RouteConfig) WithResponse(statusCode int, responseType any) *RouteConfig {
	rc.info.SuccessStatus = statusCode
	rc.info.ResponseType = responseType
	return rc
}

// WithErrorResponse adds an error response to the route
func (rc *RouteConfig) WithErrorResponse(statusCode int, description string, schema any, examples ...Example) *RouteConfig {
	code := strconv.Itoa(statusCode)
	rc.info.Responses[code] = RouteResponse{
		StatusCode:  code,
		Description: description,
		Schema:      schema,
		Examples:    examples,
	}
	return rc
}

// WithTags adds tags to the route
func (rc *RouteConfig) WithTags(tags ...string) *RouteConfig {
	rc.info.Tags = tags
	return rc
}

// Register finalizes the route configuration and registers it with the router
func (rc *RouteConfig) Register() {
	rc.router.mux.Handle(rc.info.Method+" "+rc.info.Path, rc.h)
	rc.router.routes = append(rc.router.routes, rc.info)
}

// Routes returns all documented routes in registration order
func (dr *DocRouter) Routes() []RouteInfo {
	return dr.routes
}

// Use appends middleware to the chain. Middleware added first runs outermost, and
// routes registered after Use are still served through the chain.
func (dr *DocRouter) Use(middleware ...Middleware) {
	dr.middleware = append(dr.middleware, middleware...)

	var handler http.Handler = dr.mux
	for i := len(dr.middleware) - 1; i >= 0; i-- {
		handler = dr.middleware[i](handler)
	}
	dr.handler = handler
}

// ServeHTTP makes DocRouter implement the http.Handler interface
func (dr *DocRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dr.handler.ServeHTTP(w, r)
}

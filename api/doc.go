// Package api provides the HTTP API layer for Textforge.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
// - mcptools/: the same operations exposed as MCP tools
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.1 documentation:
// - JSON spec available at /openapi.json
// - Interactive docs at /docs
//
// 2. Request/Response Validation
//
// Huma validates bodies based on struct tags:
//
//	type DiffRequest struct {
//	    Original string `json:"original"`
//	    Modified string `json:"modified"`
//	    Mode     string `json:"mode,omitempty" enum:"unified,unified-html,side-by-side,table" default:"unified"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request IDs and request logging
// - Token bucket rate limiting per client IP
// - CORS handling and response compression
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:  logger,
//	    Limiter: middleware.NewRateLimiter(10, 20),
//	    Flags:   flags,
//	})
//
//	handlers.NewWorkbenchHandler(service, logger).RegisterRoutes(humaAPI)
//	handlers.NewHealthHandler(api.Version, flags).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 422,
//	    "title": "Unprocessable Entity",
//	    "detail": "invalid JSON at line 1, column 9: invalid character '}'"
//	}
//
// Parse failures and unsupported operations map to 422, missing input to 400.
package api

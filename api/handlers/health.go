// ABOUTME: Health handler reports liveness, version and feature flag states
// ABOUTME: Used by load balancers and container orchestrators

package handlers

import (
	"context"
	"net/http"

	"textforge-api/api/dto/responses"
	"textforge-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// HealthHandler serves GET /healthz
type HealthHandler struct {
	version string
	flags   featureflags.Manager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{version: version, flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthInput has no parameters
type HealthInput struct{}

// HealthOutput represents the health response
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /healthz
func (h *HealthHandler) Health(ctx context.Context, input *HealthInput) (*HealthOutput, error) {
	flags := map[string]bool{}
	if h.flags != nil {
		for flag, enabled := range h.flags.GetAllFlags() {
			flags[string(flag)] = enabled
		}
	}
	return &HealthOutput{Body: responses.HealthResponse{
		Status:  "ok",
		Version: h.version,
		Flags:   flags,
	}}, nil
}

// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to RFC 7807 problem responses

package handlers

import (
	"context"
	"errors"
	"net/http"

	"textforge-api/api/middleware"
	coreerrors "textforge-api/core/errors"
	"textforge-api/core/interfaces"

	"github.com/danielgtaylor/huma/v2"
)

// errorStatus returns the HTTP status for a domain error
func errorStatus(err error) int {
	switch {
	case coreerrors.IsPrecondition(err):
		return http.StatusBadRequest
	case coreerrors.IsParse(err), coreerrors.IsUnsupported(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Parse failures and unsupported operations are problems with the submitted
// content (422); precondition failures are missing input (400).
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch errorStatus(err) {
	case http.StatusBadRequest:
		return huma.Error400BadRequest(err.Error())
	case http.StatusUnprocessableEntity:
		return huma.Error422UnprocessableEntity(err.Error())
	case http.StatusGatewayTimeout:
		return huma.Error504GatewayTimeout("Formatter timed out")
	default:
		// Unknown errors are not echoed to clients
		return huma.Error500InternalServerError("Internal server error")
	}
}

// logServerError records errors whose detail is hidden from the client
func logServerError(ctx context.Context, logger interfaces.Logger, op string, err error) {
	if logger == nil || errorStatus(err) < http.StatusInternalServerError {
		return
	}
	logger.Error("Request failed", map[string]interface{}{
		"operation":  op,
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(ctx),
	})
}

// batchErrorDetail is what a batch item reports for err
func batchErrorDetail(err error) string {
	switch errorStatus(err) {
	case http.StatusInternalServerError:
		return "Internal server error"
	case http.StatusGatewayTimeout:
		return "Formatter timed out"
	default:
		return err.Error()
	}
}

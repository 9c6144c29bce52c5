// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/acl"
	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/clients/pipeline"
	"github.com/jsamuelsen/askkodiak-gateway/internal/app"
	"github.com/jsamuelsen/askkodiak-gateway/internal/domain"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "UPSTREAM_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details carries field-level validation messages, or the failing
	// stage or pipeline step of an operation.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound     = "NOT_FOUND"
	ErrorCodeConflict     = "CONFLICT"
	ErrorCodeValidation   = "VALIDATION_ERROR"
	ErrorCodeForbidden    = "FORBIDDEN"
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeUnavailable  = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal     = "INTERNAL_ERROR"
	ErrorCodeTimeout      = "TIMEOUT"
	ErrorCodeBadRequest   = "BAD_REQUEST"

	// ErrorCodeUpstream carries an Ask Kodiak error through with its status.
	ErrorCodeUpstream = "UPSTREAM_ERROR"

	// ErrorCodeRequestConstruction means a pipeline step refused to build
	// the upstream request, so nothing was sent.
	ErrorCodeRequestConstruction = "REQUEST_NOT_SENT"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// withDetail sets one detail entry, allocating the map on first use.
func (e *ErrorResponse) withDetail(key, value string) *ErrorResponse {
	if e.Error.Details == nil {
		e.Error.Details = make(map[string]string, 1)
	}

	e.Error.Details[key] = value

	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
// ErrorCodeUpstream has no fixed status; it maps to 502.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MapError maps an application error to a status code and error body.
//
// Order matters. A normalized upstream error keeps the status Ask Kodiak
// returned and its normalized message, even though it also satisfies the
// domain predicates. Unknown errors become a 500 with a generic message.
func MapError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	resp, status := mapError(err)

	if stage, ok := app.FailedStage(err); ok {
		resp.withDetail("stage", string(stage))
	}

	return status, resp
}

func mapError(err error) (*ErrorResponse, int) {
	var (
		upstream     *acl.NormalizedError
		construction *pipeline.ConstructionError
		validation   *domain.ValidationError
	)

	switch {
	case errors.As(err, &upstream) && upstream.Status > 0:
		return NewErrorResponse(ErrorCodeUpstream, upstream.Message), upstream.Status

	case errors.As(err, &construction):
		return NewErrorResponse(ErrorCodeRequestConstruction, construction.Err.Error()).
			withDetail("step", construction.Step), http.StatusInternalServerError

	case errors.As(err, &validation):
		resp := NewErrorResponse(ErrorCodeValidation, validation.Error())
		if validation.Field != "" {
			resp.withDetail(validation.Field, validation.Message)
		}

		return resp, http.StatusBadRequest

	case domain.IsValidation(err):
		return NewErrorResponse(ErrorCodeValidation, err.Error()), http.StatusBadRequest

	case domain.IsNotFound(err):
		return NewErrorResponse(ErrorCodeNotFound, err.Error()), http.StatusNotFound

	case domain.IsConflict(err):
		return NewErrorResponse(ErrorCodeConflict, err.Error()), http.StatusConflict

	case domain.IsForbidden(err):
		return NewErrorResponse(ErrorCodeForbidden, err.Error()), http.StatusForbidden

	case domain.IsUnavailable(err):
		return NewErrorResponse(ErrorCodeUnavailable, err.Error()), http.StatusServiceUnavailable

	default:
		return NewErrorResponse(ErrorCodeInternal, "an internal error occurred"), http.StatusInternalServerError
	}
}

// GetTraceID returns the OpenTelemetry trace ID of the request, if any.
func GetTraceID(c *gin.Context) string {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.SpanContext().HasTraceID() {
		return ""
	}

	return span.SpanContext().TraceID().String()
}

// HandleError maps err and writes it as the response. Server-side failures
// are logged with the full error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.WithTraceID(GetTraceID(c))

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"error", err.Error(),
			"status", status,
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// RespondWithCode writes an adapter-level error such as a bad path or query
// parameter that never reached the application layer.
func RespondWithCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// RespondWithValidationErrors writes a 400 with field-level messages.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	).WithTraceID(GetTraceID(c)))
}

// RespondWithBindError writes the response for a BindAndValidate or
// BindQueryAndValidate failure.
func RespondWithBindError(c *gin.Context, err error) {
	if IsValidationError(err) {
		RespondWithValidationErrors(c, ValidationErrors(err))
		return
	}

	RespondWithCode(c, ErrorCodeBadRequest, err.Error())
}

// Package middleware provides the gin middleware that fronts the gateway API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one inbound request.
	HeaderRequestID = logging.HeaderRequestID

	// HeaderCorrelationID identifies a business transaction spanning services.
	HeaderCorrelationID = logging.HeaderCorrelationID

	// ContextKeyRequestID is the gin.Context key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength caps caller-supplied IDs; longer values are replaced.
const maxIDLength = 128

type idSpec struct {
	header string
	key    string

	// enrich stores the ID on the request context once it is known.
	enrich func(ctx context.Context, id string) context.Context
}

// RequestID returns middleware that accepts X-Request-ID or generates a
// UUID, echoes it on the response, and makes it available to handlers, the
// context logger, and outgoing Ask Kodiak calls.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idSpec{
		header: HeaderRequestID,
		key:    ContextKeyRequestID,
		enrich: logging.WithRequestID,
	})
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idSpec{
		header: HeaderCorrelationID,
		key:    ContextKeyCorrelationID,
		enrich: logging.WithCorrelationID,
	})
}

func idMiddleware(spec idSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(spec.header)
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}

		c.Set(spec.key, id)
		c.Header(spec.header, id)

		c.Request = c.Request.WithContext(spec.enrich(c.Request.Context(), id))

		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

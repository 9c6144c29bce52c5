package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/askkodiak-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
)

// Timeout sets a deadline on the request context. Upstream calls and
// fan-outs observe it through ctx. If the deadline passed and the handler
// wrote nothing, the client gets a 504 with code TIMEOUT.
//
// Handlers run on the request goroutine; nothing is interrupted.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).Warn("request deadline exceeded",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", timeout),
		)

		dto.RespondWithCode(c, dto.ErrorCodeTimeout, "request timeout exceeded")
		c.Abort()
	}
}

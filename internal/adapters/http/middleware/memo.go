package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/askkodiak-gateway/internal/app/memo"
)

// Memo attaches a fresh request-scoped memo, so repeated upstream lookups
// made while serving one request are fetched once.
func Memo() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(memo.WithContext(c.Request.Context(), memo.New()))
		c.Next()
	}
}

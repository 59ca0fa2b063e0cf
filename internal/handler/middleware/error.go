package middleware

import (
	"log/slog"
	"net/http"

	"gestion-turnos/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var internalError = httperr.New(http.StatusInternalServerError, "Internal server error")

// ErrorHandler answers for handlers that recorded an error without writing a body.
// Public errors carry their own response; anything else becomes a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last == nil {
			return
		}
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}
		c.JSON(internalError.Status, internalError)
	}
}

// Recovery turns a panic into the standard 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("recovered from panic",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
		)
		c.AbortWithStatusJSON(internalError.Status, internalError)
	})
}

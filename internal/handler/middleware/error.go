package middleware

import (
	"log/slog"
	"net/http"

	"marketplace-catalog/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the envelope of the last public error when a handler left the body empty.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		if resp, ok := lastPublic(c); ok {
			c.JSON(resp.Status, resp)
			return
		}
		if c.Writer.Status() != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}
		resp := httperr.Internal()
		c.JSON(resp.Status, resp)
	}
}

func lastPublic(c *gin.Context) (httperr.Response, bool) {
	public := c.Errors.ByType(gin.ErrorTypePublic)
	for i := len(public) - 1; i >= 0; i-- {
		if resp, ok := public[i].Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

// CustomRecovery turns a panic into a 500 envelope. Install it outermost.
func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(c.Request.Context(), "recovered from panic",
					"panic", rec,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)
				resp := httperr.Internal()
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reaxo/reaxo/internal/httpclient"
	"github.com/reaxo/reaxo/pkg/api"
)

// ErrorHandler converts errors attached by handlers into the relay's flat
// `{"error": "..."}` envelope. An upstream rejection keeps the upstream
// status and its message when one can be extracted; everything else is a 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		if c.Writer.Written() {
			// Too late to change the response; the handler already
			// committed a status or started streaming.
			return
		}

		err := c.Errors.Last().Err

		var upstream *httpclient.UpstreamError
		if errors.As(err, &upstream) {
			msg := api.UpstreamErrorMessage(upstream.Body)
			if msg == "" {
				msg = fmt.Sprintf("API returned status %d", upstream.StatusCode)
			}
			c.AbortWithStatusJSON(upstream.StatusCode, api.ErrorEnvelope{Error: msg})
			return
		}

		logger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorEnvelope{Error: err.Error()})
	}
}

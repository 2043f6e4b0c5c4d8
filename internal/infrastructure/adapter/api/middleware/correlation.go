package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIDKey is the gin context key holding the request correlation ID
const CorrelationIDKey = "correlation_id"

// correlationHeader is the inbound/outbound header carrying the ID
const correlationHeader = "X-Correlation-ID"

// Correlation assigns each request a correlation ID, honoring one supplied
// by the caller, and echoes it on the response
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(correlationHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(CorrelationIDKey, correlationID)
		c.Writer.Header().Set(correlationHeader, correlationID)
		c.Next()
	}
}

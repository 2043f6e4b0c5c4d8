package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	domainerr "github.com/payflow-labs/payflow/internal/domain/error"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/middleware"
)

// statusFromError maps a domain error to its HTTP status code
func statusFromError(err error) int {
	switch {
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest
	case domainerr.IsInsufficientFundingError(err):
		return http.StatusUnprocessableEntity
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsIdempotencyConflictError(err), domainerr.IsConcurrencyConflictError(err):
		return http.StatusConflict
	case domainerr.IsCircuitOpenError(err):
		return http.StatusServiceUnavailable
	case domainerr.IsExternalServiceError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requestContext captures the caller metadata attached to audit entries
func requestContext(c *gin.Context) entity.RequestContext {
	return entity.RequestContext{
		IP:            c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		CorrelationID: c.GetString(middleware.CorrelationIDKey),
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	archiveUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/archive"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/dto"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/metrics"
	"github.com/payflow-labs/payflow/internal/resilience"
)

// OpsHandler serves health and operator endpoints
type OpsHandler struct {
	breakers       *resilience.Registry
	archiveManager *archiveUseCase.Manager
	metrics        *metrics.Metrics
	logger         coreport.Logger
}

// NewOpsHandler creates a new ops handler instance
func NewOpsHandler(breakers *resilience.Registry, archiveManager *archiveUseCase.Manager, appMetrics *metrics.Metrics, logger coreport.Logger) *OpsHandler {
	return &OpsHandler{
		breakers:       breakers,
		archiveManager: archiveManager,
		metrics:        appMetrics,
		logger:         logger,
	}
}

// Health handles the GET /health endpoint
func (h *OpsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Breakers handles the GET /health/breakers endpoint
func (h *OpsHandler) Breakers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"breakers": h.breakers.Snapshots()})
}

// RunArchival handles the POST /admin/archival/run endpoint
func (h *OpsHandler) RunArchival(c *gin.Context) {
	report, err := h.archiveManager.RunOnce(c.Request.Context())
	if err != nil {
		h.logger.Error("Manual archival run failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	h.metrics.RecordsArchived("transfers", report.TransfersArchived)
	h.metrics.RecordsArchived("cashouts", report.CashoutsArchived)
	h.metrics.RecordsArchived("payment_requests", report.PaymentRequestsArchived)

	c.JSON(http.StatusOK, report)
}

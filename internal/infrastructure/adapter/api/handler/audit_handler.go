package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	domainerr "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	auditUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/audit"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/dto"
)

// AuditHandler serves operator audit queries
type AuditHandler struct {
	auditService *auditUseCase.Service
	logger       coreport.Logger
}

// NewAuditHandler creates a new audit handler instance
func NewAuditHandler(auditService *auditUseCase.Service, logger coreport.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// Query handles the GET /audit endpoint
func (h *AuditHandler) Query(c *gin.Context) {
	filter := persistence.AuditFilter{
		Action:       c.Query("action"),
		ResourceType: c.Query("resourceType"),
		ResourceID:   c.Query("resourceId"),
	}

	if actorParam := c.Query("actorId"); actorParam != "" {
		actorID, err := strconv.ParseUint(actorParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
				Message: "Invalid actorId parameter",
			})
			return
		}
		filter.ActorID = actorID
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
				Message: "Invalid limit parameter",
			})
			return
		}
		filter.Limit = limit
	}

	if startParam := c.Query("startDate"); startParam != "" {
		start, err := time.Parse(time.RFC3339, startParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
				Message: "Invalid startDate, expected RFC3339",
			})
			return
		}
		filter.StartDate = &start
	}
	if endParam := c.Query("endDate"); endParam != "" {
		end, err := time.Parse(time.RFC3339, endParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
				Message: "Invalid endDate, expected RFC3339",
			})
			return
		}
		filter.EndDate = &end
	}

	entries, err := h.auditService.Query(c.Request.Context(), filter)
	if err != nil {
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	responses := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = dto.AuditEntryResponse{
			ID:            e.ID,
			ActorID:       e.ActorID,
			ActorType:     e.ActorType,
			Action:        e.Action,
			ResourceType:  e.ResourceType,
			ResourceID:    e.ResourceID,
			Outcome:       e.Outcome,
			Details:       e.Details,
			CorrelationID: e.CorrelationID,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, dto.AuditListResponse{Entries: responses})
}

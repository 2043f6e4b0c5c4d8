package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	domainerr "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	"github.com/payflow-labs/payflow/internal/domain/port/persistence"
	transferUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/transfer"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/dto"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/metrics"
)

// TransferHandler handles transfer-related HTTP requests
type TransferHandler struct {
	transferService *transferUseCase.Service
	historyService  *transferUseCase.HistoryService
	metrics         *metrics.Metrics
	logger          coreport.Logger
}

// NewTransferHandler creates a new transfer handler instance
func NewTransferHandler(
	transferService *transferUseCase.Service,
	historyService *transferUseCase.HistoryService,
	appMetrics *metrics.Metrics,
	logger coreport.Logger,
) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		historyService:  historyService,
		metrics:         appMetrics,
		logger:          logger,
	}
}

// Submit handles the POST /users/{userId}/transfers endpoint
func (h *TransferHandler) Submit(c *gin.Context) {
	senderID, ok := parseUserID(c)
	if !ok {
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrMissingIdempotencyKey),
			Message: "Missing required header: Idempotency-Key",
		})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transfer request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	amountCents, err := entity.ValidateAndConvertAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	result, err := h.transferService.Submit(c.Request.Context(), transferUseCase.Request{
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		AmountCents:    amountCents,
		Note:           req.Note,
		Visibility:     req.Visibility,
		IdempotencyKey: idempotencyKey,
		Requester:      requestContext(c),
	})
	if err != nil {
		h.metrics.TransferFailed()
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		h.metrics.TransferReplayed()
		status = http.StatusOK
	} else {
		h.metrics.TransferCompleted(result.Transfer.AmountCents)
	}
	c.JSON(status, transferToResponse(result.Transfer, result.Replayed))
}

// History handles the GET /users/{userId}/transfers endpoint
func (h *TransferHandler) History(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	query := persistence.HistoryQuery{UserID: userID}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
				Message: "Invalid limit parameter",
			})
			return
		}
		query.Limit = limit
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
		query.StartDate = &start
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
		query.EndDate = &end
	}

	transfers, err := h.historyService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	responses := make([]dto.TransferResponse, len(transfers))
	for i, t := range transfers {
		responses[i] = transferToResponse(t, false)
	}
	c.JSON(http.StatusOK, dto.TransferListResponse{
		UserID:    userID,
		Transfers: responses,
	})
}

func transferToResponse(t *entity.Transfer, replayed bool) dto.TransferResponse {
	return dto.TransferResponse{
		TransferID:    t.ID,
		SenderID:      t.SenderID,
		ReceiverID:    t.ReceiverID,
		Amount:        t.AmountString(),
		Note:          t.Note,
		Visibility:    string(t.Visibility),
		Status:        string(t.Status),
		FundingSource: t.FundingSourceLabel,
		Tier:          string(t.Tier),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		Replayed:      replayed,
	}
}

// parseUserID extracts and validates the userId path parameter, writing the
// error response itself on failure
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payflow-labs/payflow/internal/domain/entity"
	domainerr "github.com/payflow-labs/payflow/internal/domain/error"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	walletUseCase "github.com/payflow-labs/payflow/internal/domain/usecase/wallet"
	"github.com/payflow-labs/payflow/internal/infrastructure/adapter/api/dto"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService *walletUseCase.Service
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(walletService *walletUseCase.Service, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// GetBalance handles the GET /users/{userId}/balance endpoint
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	balanceCents, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: entity.CentsToString(balanceCents),
	})
}

// Deposit handles the POST /users/{userId}/deposits endpoint
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	wallet, err := h.walletService.Deposit(c.Request.Context(), userID, amountCents, requestContext(c))
	if err != nil {
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: wallet.BalanceString(),
	})
}

// Cashout handles the POST /users/{userId}/cashouts endpoint
func (h *WalletHandler) Cashout(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	cashout, err := h.walletService.Cashout(c.Request.Context(), userID, amountCents, requestContext(c))
	if err != nil {
		c.JSON(statusFromError(err), dto.ErrorResponse{
			Code:    domainerr.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.CashoutResponse{
		CashoutID:   cashout.ID,
		UserID:      cashout.UserID,
		Amount:      entity.CentsToString(cashout.AmountCents),
		Destination: cashout.DestinationLabel,
		Status:      string(cashout.Status),
		CreatedAt:   cashout.CreatedAt.Format(time.RFC3339),
	})
}

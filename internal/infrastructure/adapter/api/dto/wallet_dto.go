package dto

// BalanceResponse represents the API response for a balance query
type BalanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"`
}

// DepositRequest represents the API request for funding a wallet
type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CashoutRequest represents the API request for withdrawing a balance
type CashoutRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CashoutResponse represents a completed cashout
type CashoutResponse struct {
	CashoutID   string `json:"cashoutId"`
	UserID      uint64 `json:"userId"`
	Amount      string `json:"amount"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

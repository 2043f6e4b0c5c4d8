package dto

// TransferRequest represents the API request for sending money
type TransferRequest struct {
	ReceiverID uint64 `json:"receiverId" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Note       string `json:"note"`
	Visibility string `json:"visibility" binding:"required,oneof=public friends private"`
}

// TransferResponse represents a transfer in API responses
type TransferResponse struct {
	TransferID    string `json:"transferId"`
	SenderID      uint64 `json:"senderId"`
	ReceiverID    uint64 `json:"receiverId"`
	Amount        string `json:"amount"`
	Note          string `json:"note,omitempty"`
	Visibility    string `json:"visibility"`
	Status        string `json:"status"`
	FundingSource string `json:"fundingSource,omitempty"`
	Tier          string `json:"tier,omitempty"`
	CreatedAt     string `json:"createdAt"`
	Replayed      bool   `json:"replayed,omitempty"`
}

// TransferListResponse represents a transfer history page
type TransferListResponse struct {
	UserID    uint64             `json:"userId"`
	Transfers []TransferResponse `json:"transfers"`
}

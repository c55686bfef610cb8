package dto

// RedeemResponse is the body returned by POST /advantages/:id/redeem
type RedeemResponse struct {
	Redemption  RedemptionSummary  `json:"redemption"`
	Transaction TransactionSummary `json:"transaction"`
}

// RedemptionSummary is the trimmed redemption view
type RedemptionSummary struct {
	ID        int64  `json:"id"`
	Code      string `json:"redemptionCode" example:"RDM-SF3K2A-7Q1Z"`
	Status    string `json:"status" example:"pending"`
	CreatedAt string `json:"createdAt"`
}

// RedemptionDetail is a redemption with its advantage and company context,
// used in listing views.
type RedemptionDetail struct {
	ID        int64             `json:"id"`
	Code      string            `json:"redemptionCode"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"createdAt"`
	Advantage *AdvantageSummary `json:"advantage,omitempty"`
	Company   *CompanySummary   `json:"company,omitempty"`
}

// AdvantageSummary identifies an advantage in redemption views
type AdvantageSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CostCoins int64  `json:"costCoins"`
}

// CompanySummary identifies a company in redemption views
type CompanySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UpdateRedemptionStatusRequest is the payload for PUT /redemptions/:id/status
type UpdateRedemptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
}

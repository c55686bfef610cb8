package dto

// SendCoinsRequest is the payload for POST /transactions/send
type SendCoinsRequest struct {
	ToEmail string `json:"toEmail" binding:"required,email"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
	Reason  string `json:"reason" binding:"required"`
}

// SemesterCreditRequest is the payload for POST /transactions/semester-credit.
// Amount is optional; the configured per-semester amount applies when omitted.
type SemesterCreditRequest struct {
	Amount int64  `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Reason string `json:"reason,omitempty"`
}

// TransactionSummary is the trimmed transaction view returned by mutation
// endpoints.
type TransactionSummary struct {
	ID        int64  `json:"id"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// BalanceResponse is the body of GET /transactions/balance
type BalanceResponse struct {
	Balance int64 `json:"balance" example:"900"`
}

// StudentWithRedemptions is one entry of the professor roll-up view: a student
// the professor granted coins to, with those grants and the student's
// redemptions.
type StudentWithRedemptions struct {
	Student       StudentSummary       `json:"student"`
	Transactions  []TransactionSummary `json:"transactions"`
	Redemptions   []RedemptionDetail   `json:"redemptions"`
	TotalReceived int64                `json:"totalReceived"`
}

// StudentSummary identifies a student in roll-up views
type StudentSummary struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Course          string `json:"course,omitempty"`
	InstitutionName string `json:"institutionName,omitempty"`
}

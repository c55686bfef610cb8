package models

import "time"

// Transaction is an immutable signed coin movement based on the 'transactions'
// table. The ledger is append-only: rows are never updated or deleted, and a
// user's balance is always derived as sum(received) - sum(sent).
type Transaction struct {
	ID         int64           `json:"id" db:"id" example:"1"`
	FromUserID *int64          `json:"fromUserId,omitempty" db:"from_user_id"` // NULL for system credits
	ToUserID   int64           `json:"toUserId" db:"to_user_id"`
	Amount     int64           `json:"amount" db:"amount" example:"100"`
	Reason     *string         `json:"reason,omitempty" db:"reason"`
	Kind       TransactionKind `json:"transactionType" db:"transaction_type" example:"transfer"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`

	// Counterparty emails annotated on reads for display.
	FromEmail *string `json:"fromEmail,omitempty"`
	ToEmail   string  `json:"toEmail,omitempty"`
}

package models

import "time"

// Redemption records a student claiming an advantage, based on the
// 'redemptions' table. Every redemption references exactly one backing
// transaction of kind 'redemption'; the status field is the only mutable part.
type Redemption struct {
	ID            int64            `json:"id" db:"id" example:"1"`
	StudentID     int64            `json:"studentId" db:"student_id"`
	AdvantageID   int64            `json:"advantageId" db:"advantage_id"`
	TransactionID int64            `json:"transactionId" db:"transaction_id"`
	Code          string           `json:"redemptionCode" db:"redemption_code" example:"RDM-SF3K2A-7Q1Z"` // Unique coupon code
	Status        RedemptionStatus `json:"status" db:"status" example:"pending"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Advantage *Advantage `json:"advantage,omitempty"`
}

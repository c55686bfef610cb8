package models

import "time"

// Advantage defines a redeemable reward based on the 'advantages' table
type Advantage struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	CompanyID   int64     `json:"companyId" db:"company_id" example:"3"`
	Title       string    `json:"title" db:"title" example:"Free espresso"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	CostCoins   int64     `json:"costCoins" db:"cost_coins" example:"30"` // Coin cost, always > 0
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// CompanyName is annotated from the owning company on reads.
	CompanyName string `json:"companyName,omitempty"`
}

package dto

// CreateAdvantageRequest is the payload for POST /advantages
type CreateAdvantageRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	CostCoins   int64   `json:"costCoins" binding:"required,gt=0"`
}

// UpdateAdvantageRequest is the payload for PUT /advantages/:id. Nil fields
// are left unchanged.
type UpdateAdvantageRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	CostCoins   *int64  `json:"costCoins,omitempty"`
}

// CreateAdvantageDemoRequest is the unauthenticated demo variant of
// CreateAdvantageRequest; it may pin a company explicitly.
type CreateAdvantageDemoRequest struct {
	CreateAdvantageRequest
	CompanyID *int64 `json:"companyId,omitempty"`
}

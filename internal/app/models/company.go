package models

import "time"

// Company defines the partner-company profile based on the 'companies' table
type Company struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	UserID      int64     `json:"userId" db:"user_id" example:"7"`
	Name        string    `json:"name" db:"name" example:"Campus Coffee"`
	CNPJ        string    `json:"cnpj" db:"cnpj" example:"12345678000190"` // Company registration number (unique)
	Description *string   `json:"description,omitempty" db:"description"`
	Address     *string   `json:"address,omitempty" db:"address"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Email       *string   `json:"email,omitempty" db:"email"` // Public contact email, distinct from the account email
	Website     *string   `json:"website,omitempty" db:"website"`
	IsActive    bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

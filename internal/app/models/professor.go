package models

import "time"

// Professor defines the professor profile based on the 'professors' table
type Professor struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	CPF           string    `json:"cpf" db:"cpf"`
	Department    *string   `json:"department,omitempty" db:"department"`
	InstitutionID int64     `json:"institutionId" db:"institution_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

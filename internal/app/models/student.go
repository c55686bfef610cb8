package models

import "time"

// Student defines the student profile based on the 'students' table
type Student struct {
	ID            int64     `json:"id" db:"id" example:"1"`             // Unique identifier for the student record
	UserID        int64     `json:"userId" db:"user_id" example:"5"`    // ID of the associated user account
	Name          string    `json:"name" db:"name" example:"Ana Souza"` // Student's full name
	CPF           string    `json:"cpf" db:"cpf" example:"12345678901"` // Student's national ID (unique)
	RG            *string   `json:"rg,omitempty" db:"rg"`               // Secondary ID document (nullable)
	Address       *string   `json:"address,omitempty" db:"address"`     // Home address (nullable)
	InstitutionID int64     `json:"institutionId" db:"institution_id"`  // ID of the student's institution
	Course        *string   `json:"course,omitempty" db:"course"`       // Enrolled course (nullable)
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User        *User        `json:"user,omitempty"`        // Associated account
	Institution *Institution `json:"institution,omitempty"` // Associated institution
}

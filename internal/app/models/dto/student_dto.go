package dto

// CreateStudentRequest is the payload for POST /students. Creating a student
// also provisions the backing user account.
type CreateStudentRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	Name          string  `json:"name" binding:"required"`
	CPF           string  `json:"cpf" binding:"required"`
	RG            *string `json:"rg,omitempty"`
	Address       *string `json:"address,omitempty"`
	InstitutionID int64   `json:"institutionId" binding:"required,gt=0"`
	Course        *string `json:"course,omitempty"`
}

// UpdateStudentRequest is the payload for PUT /students/:id
type UpdateStudentRequest struct {
	Name          string  `json:"name" binding:"required"`
	RG            *string `json:"rg,omitempty"`
	Address       *string `json:"address,omitempty"`
	InstitutionID int64   `json:"institutionId" binding:"required,gt=0"`
	Course        *string `json:"course,omitempty"`
}

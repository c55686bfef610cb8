package dto

// CreateCompanyRequest is the payload for POST /companies. Creating a company
// also provisions the backing user account.
type CreateCompanyRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	Name        string  `json:"name" binding:"required"`
	CNPJ        string  `json:"cnpj" binding:"required"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ContactMail *string `json:"contactEmail,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// UpdateCompanyRequest is the payload for PUT /companies/:id
type UpdateCompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ContactMail *string `json:"contactEmail,omitempty"`
	Website     *string `json:"website,omitempty"`
}

package dto

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@university.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RegisterRequest is the payload for POST /auth/register. The role decides
// which profile fields are required.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student professor company"`

	// Student / professor profile
	Name          string  `json:"name,omitempty"`
	CPF           string  `json:"cpf,omitempty"`
	RG            *string `json:"rg,omitempty"`
	Address       *string `json:"address,omitempty"`
	InstitutionID int64   `json:"institutionId,omitempty"`
	Course        *string `json:"course,omitempty"`
	Department    *string `json:"department,omitempty"`

	// Company profile
	CNPJ        string  `json:"cnpj,omitempty"`
	Description *string `json:"description,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	UserID           int64  `json:"userId"`
	Email            string `json:"email"`
	Role             string `json:"role" example:"student"`
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/auth"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users      UserStore
	students   StudentStore
	professors ProfessorStore
	companies  CompanyStore
	tokens     TokenStore
	jwt        *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, students StudentStore, professors ProfessorStore, companies CompanyStore, tokens TokenStore, jwt *auth.JWTService) AuthService {
	return &authServiceImpl{
		users:      users,
		students:   students,
		professors: professors,
		companies:  companies,
		tokens:     tokens,
		jwt:        jwt,
	}
}

// Register creates an account with its role profile and signs the user in
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	role := models.Role(req.Role)
	if !role.Valid() || role == models.RoleAdmin {
		return nil, apperrors.NewValidationError("role must be one of: student, professor, company")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     role,
		IsActive: true,
	}

	switch role {
	case models.RoleStudent:
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.CPF) == "" {
			return nil, apperrors.NewValidationError("name and cpf are required for students")
		}
		if req.InstitutionID <= 0 {
			return nil, apperrors.NewValidationError("institutionId is required for students")
		}
		student := &models.Student{
			Name:          strings.TrimSpace(req.Name),
			CPF:           strings.TrimSpace(req.CPF),
			RG:            req.RG,
			Address:       req.Address,
			InstitutionID: req.InstitutionID,
			Course:        req.Course,
		}
		if err := s.students.CreateWithUser(ctx, user, student); err != nil {
			return nil, err
		}
	case models.RoleProfessor:
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.CPF) == "" {
			return nil, apperrors.NewValidationError("name and cpf are required for professors")
		}
		if req.InstitutionID <= 0 {
			return nil, apperrors.NewValidationError("institutionId is required for professors")
		}
		professor := &models.Professor{
			Name:          strings.TrimSpace(req.Name),
			CPF:           strings.TrimSpace(req.CPF),
			Department:    req.Department,
			InstitutionID: req.InstitutionID,
		}
		if err := s.professors.CreateWithUser(ctx, user, professor); err != nil {
			return nil, err
		}
	case models.RoleCompany:
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.CNPJ) == "" {
			return nil, apperrors.NewValidationError("name and cnpj are required for companies")
		}
		company := &models.Company{
			Name:        strings.TrimSpace(req.Name),
			CNPJ:        strings.TrimSpace(req.CNPJ),
			Description: req.Description,
			Address:     req.Address,
			Phone:       req.Phone,
			Website:     req.Website,
		}
		if err := s.companies.CreateWithUser(ctx, user, company); err != nil {
			return nil, err
		}
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return s.issueTokens(ctx, user)
}

// Login verifies credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Do not reveal whether the account exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a fresh pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.Delete(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation: the old token is single-use
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.Create(ctx, user.ID, refreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		UserID:           user.ID,
		Email:            user.Email,
		Role:             string(user.Role),
	}, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/auth"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// CompanyService defines the interface for partner company management
type CompanyService interface {
	CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error)
	GetAllCompanies(ctx context.Context) ([]*models.Company, error)
	UpdateCompany(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error)
	SetCompanyActive(ctx context.Context, id int64, active bool) error
	DeleteCompany(ctx context.Context, id int64) error
}

type companyServiceImpl struct {
	companies CompanyStore
}

// NewCompanyService creates a new company service instance
func NewCompanyService(companies CompanyStore) CompanyService {
	return &companyServiceImpl{companies: companies}
}

// CreateCompany provisions a company profile together with its account
func (s *companyServiceImpl) CreateCompany(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     models.RoleCompany,
		IsActive: true,
	}
	company := &models.Company{
		Name:        strings.TrimSpace(req.Name),
		CNPJ:        strings.TrimSpace(req.CNPJ),
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.ContactMail,
		Website:     req.Website,
	}

	if err := s.companies.CreateWithUser(ctx, user, company); err != nil {
		return nil, err
	}
	company.User = user

	logger.Info().Int64("companyID", company.ID).Msg("Company created")
	return s.companies.GetByID(ctx, company.ID)
}

func (s *companyServiceImpl) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *companyServiceImpl) GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	return s.companies.GetByUserID(ctx, userID)
}

func (s *companyServiceImpl) GetAllCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.companies.GetAll(ctx)
}

// UpdateCompany applies profile changes. The CNPJ and the account email are
// immutable through this path.
func (s *companyServiceImpl) UpdateCompany(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}

	company.Name = name
	company.Description = req.Description
	company.Address = req.Address
	company.Phone = req.Phone
	company.Email = req.ContactMail
	company.Website = req.Website

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return s.companies.GetByID(ctx, id)
}

// SetCompanyActive toggles the company's listing flag. Deactivating hides all
// of its advantages from the catalog without deleting anything.
func (s *companyServiceImpl) SetCompanyActive(ctx context.Context, id int64, active bool) error {
	if err := s.companies.SetActive(ctx, id, active); err != nil {
		return err
	}
	logger.Info().Int64("companyID", id).Bool("active", active).Msg("Company active flag changed")
	return nil
}

// DeleteCompany removes the company and its account. Companies with ledger
// history cannot be deleted; deactivate them instead.
func (s *companyServiceImpl) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("companyID", id).Msg("Company deleted")
	return nil
}

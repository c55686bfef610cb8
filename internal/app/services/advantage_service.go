package services

import (
	"context"
	"strings"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// AdvantageService defines the interface for advantage catalog operations.
// The owner-scoped operations resolve the acting company from the
// authenticated user; the demo variants skip ownership entirely and exist for
// unauthenticated exploration of the catalog.
type AdvantageService interface {
	CreateAdvantage(ctx context.Context, companyUserID int64, req *dto.CreateAdvantageRequest) (*models.Advantage, error)
	GetAdvantageByID(ctx context.Context, id int64) (*models.Advantage, error)
	GetActiveAdvantages(ctx context.Context) ([]*models.Advantage, error)
	GetMyAdvantages(ctx context.Context, companyUserID int64) ([]*models.Advantage, error)
	UpdateAdvantage(ctx context.Context, companyUserID, id int64, req *dto.UpdateAdvantageRequest) (*models.Advantage, error)
	SetAdvantageActive(ctx context.Context, companyUserID, id int64, active bool) error
	DeleteAdvantage(ctx context.Context, companyUserID, id int64) error

	// Demo operations (unauthenticated)
	CreateAdvantageDemo(ctx context.Context, req *dto.CreateAdvantageDemoRequest) (*models.Advantage, error)
	UpdateAdvantageDemo(ctx context.Context, id int64, req *dto.UpdateAdvantageRequest) (*models.Advantage, error)
	SetAdvantageActiveDemo(ctx context.Context, id int64, active bool) error
	DeleteAdvantageDemo(ctx context.Context, id int64) error
}

type advantageServiceImpl struct {
	advantages AdvantageStore
	companies  CompanyStore
}

// NewAdvantageService creates a new advantage service instance
func NewAdvantageService(advantages AdvantageStore, companies CompanyStore) AdvantageService {
	return &advantageServiceImpl{advantages: advantages, companies: companies}
}

func validateAdvantageFields(title, description string, costCoins int64) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationError("description cannot be empty")
	}
	if costCoins <= 0 {
		return apperrors.NewValidationError("costCoins must be greater than zero")
	}
	return nil
}

// CreateAdvantage adds an advantage to the acting company's catalog
func (s *advantageServiceImpl) CreateAdvantage(ctx context.Context, companyUserID int64, req *dto.CreateAdvantageRequest) (*models.Advantage, error) {
	if err := validateAdvantageFields(req.Title, req.Description, req.CostCoins); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByUserID(ctx, companyUserID)
	if err != nil {
		return nil, err
	}

	adv := &models.Advantage{
		CompanyID:   company.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    req.ImageURL,
		CostCoins:   req.CostCoins,
	}
	if err := s.advantages.Create(ctx, adv); err != nil {
		return nil, err
	}
	adv.CompanyName = company.Name

	logger.Info().Int64("advantageID", adv.ID).Int64("companyID", company.ID).Msg("Advantage created")
	return adv, nil
}

func (s *advantageServiceImpl) GetAdvantageByID(ctx context.Context, id int64) (*models.Advantage, error) {
	return s.advantages.GetByID(ctx, id)
}

func (s *advantageServiceImpl) GetActiveAdvantages(ctx context.Context) ([]*models.Advantage, error) {
	return s.advantages.GetAllActive(ctx)
}

// GetMyAdvantages lists the acting company's advantages, inactive included
func (s *advantageServiceImpl) GetMyAdvantages(ctx context.Context, companyUserID int64) ([]*models.Advantage, error) {
	company, err := s.companies.GetByUserID(ctx, companyUserID)
	if err != nil {
		return nil, err
	}
	return s.advantages.GetByCompanyID(ctx, company.ID)
}

// ownedAdvantage resolves the advantage and checks it belongs to the acting
// company.
func (s *advantageServiceImpl) ownedAdvantage(ctx context.Context, companyUserID, id int64) (*models.Advantage, error) {
	adv, err := s.advantages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetByUserID(ctx, companyUserID)
	if err != nil {
		return nil, err
	}
	if adv.CompanyID != company.ID {
		return nil, apperrors.NewForbiddenError("advantage belongs to another company")
	}
	return adv, nil
}

// UpdateAdvantage applies partial changes to an owned advantage
func (s *advantageServiceImpl) UpdateAdvantage(ctx context.Context, companyUserID, id int64, req *dto.UpdateAdvantageRequest) (*models.Advantage, error) {
	if _, err := s.ownedAdvantage(ctx, companyUserID, id); err != nil {
		return nil, err
	}
	if err := s.applyUpdate(ctx, id, req); err != nil {
		return nil, err
	}
	return s.advantages.GetByID(ctx, id)
}

func (s *advantageServiceImpl) applyUpdate(ctx context.Context, id int64, req *dto.UpdateAdvantageRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return apperrors.NewValidationError("title cannot be empty")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return apperrors.NewValidationError("description cannot be empty")
	}
	if req.CostCoins != nil && *req.CostCoins <= 0 {
		return apperrors.NewValidationError("costCoins must be greater than zero")
	}
	return s.advantages.Update(ctx, id, req.Title, req.Description, req.ImageURL, req.CostCoins)
}

// SetAdvantageActive toggles visibility of an owned advantage
func (s *advantageServiceImpl) SetAdvantageActive(ctx context.Context, companyUserID, id int64, active bool) error {
	if _, err := s.ownedAdvantage(ctx, companyUserID, id); err != nil {
		return err
	}
	return s.advantages.SetActive(ctx, id, active)
}

// DeleteAdvantage removes an owned advantage
func (s *advantageServiceImpl) DeleteAdvantage(ctx context.Context, companyUserID, id int64) error {
	if _, err := s.ownedAdvantage(ctx, companyUserID, id); err != nil {
		return err
	}
	if err := s.advantages.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("advantageID", id).Msg("Advantage deleted")
	return nil
}

// CreateAdvantageDemo creates an advantage without authentication. The target
// company comes from the payload, falling back to the first registered
// company.
func (s *advantageServiceImpl) CreateAdvantageDemo(ctx context.Context, req *dto.CreateAdvantageDemoRequest) (*models.Advantage, error) {
	if err := validateAdvantageFields(req.Title, req.Description, req.CostCoins); err != nil {
		return nil, err
	}

	var company *models.Company
	if req.CompanyID != nil {
		c, err := s.companies.GetByID(ctx, *req.CompanyID)
		if err != nil {
			return nil, err
		}
		company = c
	} else {
		companies, err := s.companies.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(companies) == 0 {
			return nil, apperrors.ErrCompanyNotFound
		}
		company = companies[0]
	}

	adv := &models.Advantage{
		CompanyID:   company.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    req.ImageURL,
		CostCoins:   req.CostCoins,
	}
	if err := s.advantages.Create(ctx, adv); err != nil {
		return nil, err
	}
	adv.CompanyName = company.Name
	return adv, nil
}

// UpdateAdvantageDemo applies partial changes without an ownership check
func (s *advantageServiceImpl) UpdateAdvantageDemo(ctx context.Context, id int64, req *dto.UpdateAdvantageRequest) (*models.Advantage, error) {
	if _, err := s.advantages.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.applyUpdate(ctx, id, req); err != nil {
		return nil, err
	}
	return s.advantages.GetByID(ctx, id)
}

// SetAdvantageActiveDemo flips the listing flag without an ownership check
func (s *advantageServiceImpl) SetAdvantageActiveDemo(ctx context.Context, id int64, active bool) error {
	return s.advantages.SetActive(ctx, id, active)
}

// DeleteAdvantageDemo removes an advantage without an ownership check
func (s *advantageServiceImpl) DeleteAdvantageDemo(ctx context.Context, id int64) error {
	return s.advantages.Delete(ctx, id)
}

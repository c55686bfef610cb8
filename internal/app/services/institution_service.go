package services

import (
	"context"

	"github.com/meritoapp/merito/internal/app/models"
)

// InstitutionService exposes the institution catalog
type InstitutionService interface {
	GetAllInstitutions(ctx context.Context) ([]*models.Institution, error)
	GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error)
}

type institutionServiceImpl struct {
	institutions InstitutionStore
}

// NewInstitutionService creates a new institution service instance
func NewInstitutionService(institutions InstitutionStore) InstitutionService {
	return &institutionServiceImpl{institutions: institutions}
}

func (s *institutionServiceImpl) GetAllInstitutions(ctx context.Context) ([]*models.Institution, error) {
	return s.institutions.GetAll(ctx)
}

func (s *institutionServiceImpl) GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error) {
	return s.institutions.GetByID(ctx, id)
}

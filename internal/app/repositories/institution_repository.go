package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// InstitutionRepository handles institution database operations
type InstitutionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstitutionRepository creates a new InstitutionRepository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll retrieves all institutions ordered by name
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	sql, args, err := r.sb.Select("id", "name", "address", "created_at").
		From("institutions").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get institutions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying institutions")
		return nil, fmt.Errorf("error querying institutions: %w", err)
	}
	defer rows.Close()

	institutions := []*models.Institution{}
	for rows.Next() {
		inst := &models.Institution{}
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.Address, &inst.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning institution row: %w", err)
		}
		institutions = append(institutions, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating institution rows: %w", err)
	}
	return institutions, nil
}

// GetByID retrieves an institution by ID
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	sql, args, err := r.sb.Select("id", "name", "address", "created_at").
		From("institutions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get institution query: %w", err)
	}

	inst := &models.Institution{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&inst.ID, &inst.Name, &inst.Address, &inst.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error getting institution by ID: %w", err)
	}
	return inst, nil
}

// Create inserts a new institution. Used by seeding.
func (r *InstitutionRepository) Create(ctx context.Context, inst *models.Institution) (int64, error) {
	sql, args, err := r.sb.Insert("institutions").
		Columns("name", "address").
		Values(inst.Name, inst.Address).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create institution query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating institution: %w", err)
	}
	return id, nil
}

// CountAll returns the number of institutions. Used by seeding to decide
// whether defaults are needed.
func (r *InstitutionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM institutions").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting institutions: %w", err)
	}
	return count, nil
}

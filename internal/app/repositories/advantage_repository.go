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

// AdvantageRepository handles advantage catalog database operations
type AdvantageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdvantageRepository creates a new AdvantageRepository
func NewAdvantageRepository(db *pgxpool.Pool) *AdvantageRepository {
	return &AdvantageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const advantageSelectColumns = "a.id, a.company_id, a.title, a.description, a.image_url, a.cost_coins, a.is_active, a.created_at, c.name"

func scanAdvantageRow(row pgx.Row) (*models.Advantage, error) {
	adv := &models.Advantage{}
	err := row.Scan(
		&adv.ID, &adv.CompanyID, &adv.Title, &adv.Description, &adv.ImageURL,
		&adv.CostCoins, &adv.IsActive, &adv.CreatedAt, &adv.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	return adv, nil
}

func (r *AdvantageRepository) selectAdvantages() squirrel.SelectBuilder {
	return r.sb.Select(advantageSelectColumns).
		From("advantages a").
		Join("companies c ON c.id = a.company_id")
}

// Create inserts a new advantage
func (r *AdvantageRepository) Create(ctx context.Context, adv *models.Advantage) error {
	sql, args, err := r.sb.Insert("advantages").
		Columns("company_id", "title", "description", "image_url", "cost_coins").
		Values(adv.CompanyID, adv.Title, adv.Description, adv.ImageURL, adv.CostCoins).
		Suffix("RETURNING id, is_active, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create advantage query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&adv.ID, &adv.IsActive, &adv.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create advantage query")
		return fmt.Errorf("error creating advantage: %w", err)
	}
	return nil
}

// GetByID retrieves an advantage with its company name
func (r *AdvantageRepository) GetByID(ctx context.Context, id int64) (*models.Advantage, error) {
	sql, args, err := r.selectAdvantages().
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get advantage query: %w", err)
	}

	adv, err := scanAdvantageRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdvantageNotFound
		}
		logger.Error().Err(err).Int64("advantageID", id).Msg("Error scanning advantage row")
		return nil, fmt.Errorf("error getting advantage by ID: %w", err)
	}
	return adv, nil
}

// GetAllActive retrieves the redeemable catalog: active advantages of active
// companies, newest first.
func (r *AdvantageRepository) GetAllActive(ctx context.Context) ([]*models.Advantage, error) {
	sql, args, err := r.selectAdvantages().
		Where(squirrel.Eq{"a.is_active": true, "c.is_active": true}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get active advantages query: %w", err)
	}
	return r.queryAdvantages(ctx, sql, args)
}

// GetByCompanyID retrieves all advantages of one company, active or not
func (r *AdvantageRepository) GetByCompanyID(ctx context.Context, companyID int64) ([]*models.Advantage, error) {
	sql, args, err := r.selectAdvantages().
		Where(squirrel.Eq{"a.company_id": companyID}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company advantages query: %w", err)
	}
	return r.queryAdvantages(ctx, sql, args)
}

func (r *AdvantageRepository) queryAdvantages(ctx context.Context, sql string, args []interface{}) ([]*models.Advantage, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying advantages")
		return nil, fmt.Errorf("error querying advantages: %w", err)
	}
	defer rows.Close()

	advantages := []*models.Advantage{}
	for rows.Next() {
		adv, err := scanAdvantageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning advantage row: %w", err)
		}
		advantages = append(advantages, adv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating advantage rows: %w", err)
	}
	return advantages, nil
}

// Update applies non-nil fields to an advantage
func (r *AdvantageRepository) Update(ctx context.Context, id int64, title, description, imageURL *string, costCoins *int64) error {
	update := r.sb.Update("advantages").Where(squirrel.Eq{"id": id})
	changed := false
	if title != nil {
		update = update.Set("title", *title)
		changed = true
	}
	if description != nil {
		update = update.Set("description", *description)
		changed = true
	}
	if imageURL != nil {
		update = update.Set("image_url", *imageURL)
		changed = true
	}
	if costCoins != nil {
		update = update.Set("cost_coins", *costCoins)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update advantage query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("advantageID", id).Msg("Error executing update advantage query")
		return fmt.Errorf("error updating advantage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdvantageNotFound
	}
	return nil
}

// SetActive flips the advantage listing flag
func (r *AdvantageRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := r.sb.Update("advantages").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set advantage active query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating advantage active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdvantageNotFound
	}
	return nil
}

// Delete removes an advantage. Redemption rows referencing it cascade; the
// ledger transactions behind them stay.
func (r *AdvantageRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("advantages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete advantage query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("advantageID", id).Msg("Error executing delete advantage query")
		return fmt.Errorf("error deleting advantage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdvantageNotFound
	}
	return nil
}

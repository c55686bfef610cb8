package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/db"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/dberrors"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// CompanyRepository handles partner company database operations
type CompanyRepository struct {
	db    *pgxpool.Pool
	users *UserRepository
	sb    squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(pool *pgxpool.Pool, users *UserRepository) *CompanyRepository {
	return &CompanyRepository{
		db:    pool,
		users: users,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithUser creates the user account and company profile atomically
func (r *CompanyRepository) CreateWithUser(ctx context.Context, user *models.User, company *models.Company) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := r.users.CreateTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID
		company.UserID = userID

		sql, args, err := r.sb.Insert("companies").
			Columns("user_id", "name", "cnpj", "description", "address", "phone", "email", "website").
			Values(company.UserID, company.Name, company.CNPJ, company.Description, company.Address, company.Phone, company.Email, company.Website).
			Suffix("RETURNING id, is_active, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create company query: %w", err)
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.IsActive, &company.CreatedAt, &company.UpdatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrCNPJAlreadyExists
			}
			return fmt.Errorf("error creating company: %w", err)
		}
		return nil
	})
}

const companySelectColumns = "c.id, c.user_id, c.name, c.cnpj, c.description, c.address, c.phone, c.email, c.website, c.is_active, c.created_at, c.updated_at, u.email"

func scanCompanyRow(row pgx.Row) (*models.Company, error) {
	company := &models.Company{User: &models.User{}}
	err := row.Scan(
		&company.ID, &company.UserID, &company.Name, &company.CNPJ, &company.Description,
		&company.Address, &company.Phone, &company.Email, &company.Website,
		&company.IsActive, &company.CreatedAt, &company.UpdatedAt, &company.User.Email,
	)
	if err != nil {
		return nil, err
	}
	company.User.ID = company.UserID
	company.User.Role = models.RoleCompany
	return company, nil
}

func (r *CompanyRepository) selectCompanies() squirrel.SelectBuilder {
	return r.sb.Select(companySelectColumns).
		From("companies c").
		Join("users u ON u.id = c.user_id")
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	sql, args, err := r.selectCompanies().
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	company, err := scanCompanyRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		logger.Error().Err(err).Int64("companyID", id).Msg("Error scanning company row")
		return nil, fmt.Errorf("error getting company by ID: %w", err)
	}
	return company, nil
}

// GetByUserID retrieves the company profile belonging to a user account
func (r *CompanyRepository) GetByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	sql, args, err := r.selectCompanies().
		Where(squirrel.Eq{"c.user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company by user query: %w", err)
	}

	company, err := scanCompanyRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error getting company by user ID: %w", err)
	}
	return company, nil
}

// GetAll retrieves all companies ordered by name
func (r *CompanyRepository) GetAll(ctx context.Context) ([]*models.Company, error) {
	sql, args, err := r.selectCompanies().
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company, err := scanCompanyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return companies, nil
}

// Update modifies a company's mutable profile fields. CNPJ and the backing
// account are intentionally not updatable here.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Update("companies").
		SetMap(map[string]interface{}{
			"name":        company.Name,
			"description": company.Description,
			"address":     company.Address,
			"phone":       company.Phone,
			"email":       company.Email,
			"website":     company.Website,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": company.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("companyID", company.ID).Msg("Error executing update company query")
		return fmt.Errorf("error updating company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// SetActive flips the company listing flag. Inactive companies keep their
// advantages but none of them can be redeemed.
func (r *CompanyRepository) SetActive(ctx context.Context, id int64, active bool) error {
	sql, args, err := r.sb.Update("companies").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set company active query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating company active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company and its backing user account. A company that has
// received redemption payments has ledger history and cannot be deleted.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	var userID int64
	err := r.db.QueryRow(ctx, "SELECT user_id FROM companies WHERE id = $1", id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCompanyNotFound
		}
		return fmt.Errorf("error resolving company user: %w", err)
	}
	return r.users.Delete(ctx, userID)
}

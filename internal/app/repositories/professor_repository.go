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
)

// ProfessorRepository handles professor profile database operations
type ProfessorRepository struct {
	db    *pgxpool.Pool
	users *UserRepository
	sb    squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(pool *pgxpool.Pool, users *UserRepository) *ProfessorRepository {
	return &ProfessorRepository{
		db:    pool,
		users: users,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithUser creates the user account and professor profile atomically
func (r *ProfessorRepository) CreateWithUser(ctx context.Context, user *models.User, professor *models.Professor) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := r.users.CreateTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID
		professor.UserID = userID

		sql, args, err := r.sb.Insert("professors").
			Columns("user_id", "name", "cpf", "department", "institution_id").
			Values(professor.UserID, professor.Name, professor.CPF, professor.Department, professor.InstitutionID).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create professor query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&professor.ID, &professor.CreatedAt); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrCPFAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrInstitutionNotFound
			}
			return fmt.Errorf("error creating professor: %w", err)
		}
		return nil
	})
}

const professorSelectColumns = "p.id, p.user_id, p.name, p.cpf, p.department, p.institution_id, p.created_at, u.email, u.is_active"

func scanProfessorRow(row pgx.Row) (*models.Professor, error) {
	professor := &models.Professor{User: &models.User{}}
	err := row.Scan(
		&professor.ID, &professor.UserID, &professor.Name, &professor.CPF,
		&professor.Department, &professor.InstitutionID, &professor.CreatedAt,
		&professor.User.Email, &professor.User.IsActive,
	)
	if err != nil {
		return nil, err
	}
	professor.User.ID = professor.UserID
	professor.User.Role = models.RoleProfessor
	return professor, nil
}

func (r *ProfessorRepository) selectProfessors() squirrel.SelectBuilder {
	return r.sb.Select(professorSelectColumns).
		From("professors p").
		Join("users u ON u.id = p.user_id")
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	sql, args, err := r.selectProfessors().
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get professor query: %w", err)
	}

	professor, err := scanProfessorRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error getting professor by ID: %w", err)
	}
	return professor, nil
}

// GetByUserID retrieves the professor profile belonging to a user account
func (r *ProfessorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Professor, error) {
	sql, args, err := r.selectProfessors().
		Where(squirrel.Eq{"p.user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get professor by user query: %w", err)
	}

	professor, err := scanProfessorRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error getting professor by user ID: %w", err)
	}
	return professor, nil
}

// GetAll retrieves all professors ordered by name
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	sql, args, err := r.selectProfessors().
		OrderBy("p.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all professors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying professors: %w", err)
	}
	defer rows.Close()

	professors := []*models.Professor{}
	for rows.Next() {
		professor, err := scanProfessorRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning professor row: %w", err)
		}
		professors = append(professors, professor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating professor rows: %w", err)
	}
	return professors, nil
}

// ListActiveUserIDs returns the user IDs of all professors with active
// accounts. Used by the semester credit batch.
func (r *ProfessorRepository) ListActiveUserIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("p.user_id").
		From("professors p").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"u.is_active": true}).
		OrderBy("p.user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list professor users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying professor users: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning professor user ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating professor user rows: %w", err)
	}
	return ids, nil
}

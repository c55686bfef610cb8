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

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db    *pgxpool.Pool
	users *UserRepository
	sb    squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool *pgxpool.Pool, users *UserRepository) *StudentRepository {
	return &StudentRepository{
		db:    pool,
		users: users,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithUser creates the user account and student profile atomically.
// The caller provides a user with a hashed password and a student with the
// profile fields; IDs are filled in on success.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userID, err := r.users.CreateTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID
		student.UserID = userID

		sql, args, err := r.sb.Insert("students").
			Columns("user_id", "name", "cpf", "rg", "address", "institution_id", "course").
			Values(student.UserID, student.Name, student.CPF, student.RG, student.Address, student.InstitutionID, student.Course).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create student query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrCPFAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrInstitutionNotFound
			}
			return fmt.Errorf("error creating student: %w", err)
		}
		return nil
	})
}

const studentSelectColumns = "s.id, s.user_id, s.name, s.cpf, s.rg, s.address, s.institution_id, s.course, s.created_at, u.email, u.is_active, i.name"

func scanStudentRow(row pgx.Row) (*models.Student, error) {
	student := &models.Student{User: &models.User{}, Institution: &models.Institution{}}
	err := row.Scan(
		&student.ID, &student.UserID, &student.Name, &student.CPF, &student.RG,
		&student.Address, &student.InstitutionID, &student.Course, &student.CreatedAt,
		&student.User.Email, &student.User.IsActive, &student.Institution.Name,
	)
	if err != nil {
		return nil, err
	}
	student.User.ID = student.UserID
	student.User.Role = models.RoleStudent
	student.Institution.ID = student.InstitutionID
	return student, nil
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentSelectColumns).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Join("institutions i ON i.id = s.institution_id")
}

// GetByID retrieves a student with account and institution context
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudentRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// GetByUserID retrieves the student profile belonging to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.selectStudents().
		Where(squirrel.Eq{"s.user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by user query: %w", err)
	}

	student, err := scanStudentRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by user ID: %w", err)
	}
	return student, nil
}

// GetAll retrieves all students ordered by name
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.selectStudents().
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// Update modifies a student's mutable profile fields. CPF and the backing
// account are intentionally not updatable here.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":           student.Name,
			"rg":             student.RG,
			"address":        student.Address,
			"institution_id": student.InstitutionID,
			"course":         student.Course,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInstitutionNotFound
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student and its backing user account. The profile row and
// refresh tokens cascade with the user; ledger rows block the delete instead,
// surfacing ErrUserHasLedgerHistory.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	var userID int64
	err := r.db.QueryRow(ctx, "SELECT user_id FROM students WHERE id = $1", id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error resolving student user: %w", err)
	}
	return r.users.Delete(ctx, userID)
}

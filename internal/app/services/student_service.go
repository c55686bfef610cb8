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

// StudentService defines the interface for student management operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	students     StudentStore
	institutions InstitutionStore
}

// NewStudentService creates a new student service instance
func NewStudentService(students StudentStore, institutions InstitutionStore) StudentService {
	return &studentServiceImpl{students: students, institutions: institutions}
}

// CreateStudent provisions a student profile together with its account
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if _, err := s.institutions.GetByID(ctx, req.InstitutionID); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     models.RoleStudent,
		IsActive: true,
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
	student.User = user

	logger.Info().Int64("studentID", student.ID).Msg("Student created")
	return s.students.GetByID(ctx, student.ID)
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

func (s *studentServiceImpl) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.students.GetByUserID(ctx, userID)
}

func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.students.GetAll(ctx)
}

// UpdateStudent applies profile changes. The CPF and the account email are
// immutable through this path.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InstitutionID != student.InstitutionID {
		if _, err := s.institutions.GetByID(ctx, req.InstitutionID); err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}

	student.Name = name
	student.RG = req.RG
	student.Address = req.Address
	student.InstitutionID = req.InstitutionID
	student.Course = req.Course

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.students.GetByID(ctx, id)
}

// DeleteStudent removes the student and its account. Students with ledger
// history cannot be deleted; the conflict surfaces to the caller.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

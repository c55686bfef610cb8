package services

import (
	"context"
	"time"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/repositories"
)

// The services depend on narrow store interfaces rather than the concrete
// repositories so tests can substitute in-memory fakes. The repository types
// satisfy these implicitly.

// UserStore is the account persistence surface used by services
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*repositories.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// InstitutionStore reads the institution catalog
type InstitutionStore interface {
	GetAll(ctx context.Context) ([]*models.Institution, error)
	GetByID(ctx context.Context, id int64) (*models.Institution, error)
}

// StudentStore is the student profile persistence surface
type StudentStore interface {
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// ProfessorStore is the professor profile persistence surface
type ProfessorStore interface {
	CreateWithUser(ctx context.Context, user *models.User, professor *models.Professor) error
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Professor, error)
	GetAll(ctx context.Context) ([]*models.Professor, error)
	ListActiveUserIDs(ctx context.Context) ([]int64, error)
}

// CompanyStore is the partner company persistence surface
type CompanyStore interface {
	CreateWithUser(ctx context.Context, user *models.User, company *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Company, error)
	GetAll(ctx context.Context) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// AdvantageStore is the advantage catalog persistence surface
type AdvantageStore interface {
	Create(ctx context.Context, adv *models.Advantage) error
	GetByID(ctx context.Context, id int64) (*models.Advantage, error)
	GetAllActive(ctx context.Context) ([]*models.Advantage, error)
	GetByCompanyID(ctx context.Context, companyID int64) ([]*models.Advantage, error)
	Update(ctx context.Context, id int64, title, description, imageURL *string, costCoins *int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// LedgerStore is the append-only transaction ledger surface
type LedgerStore interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	Transfer(ctx context.Context, fromUserID, toUserID, amount int64, reason string) (*models.Transaction, error)
	CreateSemesterCredits(ctx context.Context, toUserIDs []int64, amount int64, reason string) ([]*models.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Transaction, error)
	ListTransfersBySender(ctx context.Context, fromUserID int64) ([]*models.Transaction, error)
}

// RedemptionStore is the redemption coupon persistence surface
type RedemptionStore interface {
	Redeem(ctx context.Context, studentUserID, studentID, companyUserID int64, adv *models.Advantage, code string) (*models.Redemption, *models.Transaction, error)
	HasPending(ctx context.Context, studentID, advantageID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Redemption, error)
	ListByStudentID(ctx context.Context, studentID int64) ([]*models.Redemption, error)
	UpdateStatus(ctx context.Context, id int64, status models.RedemptionStatus) error
}

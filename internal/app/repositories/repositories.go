package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	InstitutionRepository *InstitutionRepository
	StudentRepository     *StudentRepository
	ProfessorRepository   *ProfessorRepository
	CompanyRepository     *CompanyRepository
	AdvantageRepository   *AdvantageRepository
	TransactionRepository *TransactionRepository
	RedemptionRepository  *RedemptionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	users := NewUserRepository(db)
	transactions := NewTransactionRepository(db)

	return &Repositories{
		UserRepository:        users,
		TokenRepository:       NewTokenRepository(db),
		InstitutionRepository: NewInstitutionRepository(db),
		StudentRepository:     NewStudentRepository(db, users),
		ProfessorRepository:   NewProfessorRepository(db, users),
		CompanyRepository:     NewCompanyRepository(db, users),
		AdvantageRepository:   NewAdvantageRepository(db),
		TransactionRepository: transactions,
		RedemptionRepository:  NewRedemptionRepository(db, transactions),
	}
}

package services

import (
	"github.com/meritoapp/merito/internal/app/repositories"
	"github.com/meritoapp/merito/internal/config"
	"github.com/meritoapp/merito/internal/pkg/auth"
	"github.com/meritoapp/merito/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService        AuthService
	InstitutionService InstitutionService
	StudentService     StudentService
	CompanyService     CompanyService
	AdvantageService   AdvantageService
	TransactionService TransactionService
	RedemptionService  RedemptionService
}

// NewServices wires all services onto the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, mailer email.Mailer, cfg *config.Config) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.ProfessorRepository,
			repos.CompanyRepository,
			repos.TokenRepository,
			jwtService,
		),
		InstitutionService: NewInstitutionService(repos.InstitutionRepository),
		StudentService:     NewStudentService(repos.StudentRepository, repos.InstitutionRepository),
		CompanyService:     NewCompanyService(repos.CompanyRepository),
		AdvantageService:   NewAdvantageService(repos.AdvantageRepository, repos.CompanyRepository),
		TransactionService: NewTransactionService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.ProfessorRepository,
			repos.TransactionRepository,
			repos.RedemptionRepository,
			mailer,
			cfg.Merit.SemesterCreditAmount,
		),
		RedemptionService: NewRedemptionService(
			repos.StudentRepository,
			repos.CompanyRepository,
			repos.AdvantageRepository,
			repos.RedemptionRepository,
			mailer,
		),
	}
}

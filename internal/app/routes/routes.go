package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meritoapp/merito/internal/app/controllers"
	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	institutionController *controllers.InstitutionController,
	studentController *controllers.StudentController,
	companyController *controllers.CompanyController,
	advantageController *controllers.AdvantageController,
	transactionController *controllers.TransactionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	institutions := v1.Group("/institutions")
	{
		institutions.GET("", institutionController.GetAllInstitutions)
		institutions.GET("/:id", institutionController.GetInstitutionByID)
	}

	// Demo routes: unauthenticated catalog management for API exploration
	demo := v1.Group("/advantages/demo")
	{
		demo.GET("", advantageController.GetAdvantagesDemo)
		demo.POST("", advantageController.CreateAdvantageDemo)
		demo.PUT("/:id", advantageController.UpdateAdvantageDemo)
		demo.PATCH("/:id/toggle-active", advantageController.ToggleAdvantageActiveDemo)
		demo.DELETE("/:id", advantageController.DeleteAdvantageDemo)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Advantage catalog
		advantages := authenticated.Group("/advantages")
		{
			advantages.GET("", advantageController.GetActiveAdvantages)
			advantages.GET("/:id", advantageController.GetAdvantageByID)

			advantagesCompany := advantages.Group("")
			advantagesCompany.Use(authMiddleware.RoleRequired(models.RoleCompany))
			{
				advantagesCompany.GET("/mine", advantageController.GetMyAdvantages)
				advantagesCompany.POST("", advantageController.CreateAdvantage)
				advantagesCompany.PUT("/:id", advantageController.UpdateAdvantage)
				advantagesCompany.PATCH("/:id/toggle-active", advantageController.ToggleAdvantageActive)
				advantagesCompany.DELETE("/:id", advantageController.DeleteAdvantage)
			}

			advantagesStudent := advantages.Group("")
			advantagesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				advantagesStudent.POST("/:id/redeem", advantageController.RedeemAdvantage)
			}
		}

		// Redemption coupons
		redemptions := authenticated.Group("/redemptions")
		{
			redemptionsStudent := redemptions.Group("")
			redemptionsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				redemptionsStudent.GET("/mine", advantageController.GetMyRedemptions)
			}

			redemptionsCompany := redemptions.Group("")
			redemptionsCompany.Use(authMiddleware.RoleRequired(models.RoleCompany))
			{
				redemptionsCompany.PUT("/:id/status", advantageController.UpdateRedemptionStatus)
			}
		}

		// Ledger
		transactions := authenticated.Group("/transactions")
		{
			transactions.GET("", transactionController.GetMyTransactions)
			transactions.GET("/balance", transactionController.GetBalance)

			transactionsProfessor := transactions.Group("")
			transactionsProfessor.Use(authMiddleware.RoleRequired(models.RoleProfessor))
			{
				transactionsProfessor.POST("/send", transactionController.SendCoins)
				transactionsProfessor.GET("/professor/students-with-redemptions", transactionController.GetStudentsWithRedemptions)
			}

			transactionsAdmin := transactions.Group("")
			transactionsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				transactionsAdmin.POST("/semester-credit", transactionController.IssueSemesterCredits)
			}
		}

		// Student records
		students := authenticated.Group("/students")
		{
			studentsSelf := students.Group("")
			studentsSelf.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				studentsSelf.GET("/me", studentController.GetMyProfile)
			}

			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdmin.POST("", studentController.CreateStudent)
				studentsAdmin.GET("", studentController.GetAllStudents)
				studentsAdmin.GET("/:id", studentController.GetStudentByID)
				studentsAdmin.PUT("/:id", studentController.UpdateStudent)
				studentsAdmin.DELETE("/:id", studentController.DeleteStudent)
			}
		}

		// Partner companies
		companies := authenticated.Group("/companies")
		{
			companiesSelf := companies.Group("")
			companiesSelf.Use(authMiddleware.RoleRequired(models.RoleCompany))
			{
				companiesSelf.GET("/me", companyController.GetMyCompany)
			}

			companiesAdmin := companies.Group("")
			companiesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				companiesAdmin.POST("", companyController.CreateCompany)
				companiesAdmin.GET("", companyController.GetAllCompanies)
				companiesAdmin.GET("/:id", companyController.GetCompanyByID)
				companiesAdmin.PUT("/:id", companyController.UpdateCompany)
				companiesAdmin.PATCH("/:id/toggle-active", companyController.ToggleCompanyActive)
				companiesAdmin.DELETE("/:id", companyController.DeleteCompany)
			}
		}
	}
}

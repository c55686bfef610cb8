package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/app/services"
	"github.com/meritoapp/merito/internal/middleware"
)

// TransactionController handles ledger operations
type TransactionController struct {
	transactionService services.TransactionService
}

// NewTransactionController creates a new TransactionController
func NewTransactionController(transactionService services.TransactionService) *TransactionController {
	return &TransactionController{transactionService: transactionService}
}

// SendCoins grants coins from a professor to a student
// @Summary Send coins
// @Description Transfers coins to a student addressed by email. The balance check and the ledger append are atomic.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendCoinsRequest true "Transfer data"
// @Success 201 {object} dto.APIResponse{data=models.Transaction} "Coins transferred"
// @Failure 400 {object} dto.ErrorResponse "Insufficient balance or invalid recipient"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Router /transactions/send [post]
func (c *TransactionController) SendCoins(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendCoinsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	txn, err := c.transactionService.SendCoins(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      txn,
		Timestamp: time.Now(),
	})
}

// GetBalance returns the caller's ledger-derived balance
// @Summary Get balance
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.BalanceResponse}
// @Router /transactions/balance [get]
func (c *TransactionController) GetBalance(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	balance, err := c.transactionService.GetBalance(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.BalanceResponse{Balance: balance},
		Timestamp: time.Now(),
	})
}

// GetMyTransactions lists the caller's ledger history, newest first
// @Summary List own transactions
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Transaction}
// @Router /transactions [get]
func (c *TransactionController) GetMyTransactions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	transactions, err := c.transactionService.GetMyTransactions(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      transactions,
		Timestamp: time.Now(),
	})
}

// GetStudentsWithRedemptions builds the professor roll-up view
// @Summary List granted students with redemptions
// @Description Every student the professor granted coins to, with those grants and the student's redemption history
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentWithRedemptions}
// @Router /transactions/professor/students-with-redemptions [get]
func (c *TransactionController) GetStudentsWithRedemptions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.transactionService.GetStudentsWithRedemptions(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// IssueSemesterCredits grants every active professor the semester allowance
// @Summary Issue semester credits
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SemesterCreditRequest false "Amount override"
// @Success 201 {object} dto.APIResponse "Credits issued"
// @Router /transactions/semester-credit [post]
func (c *TransactionController) IssueSemesterCredits(ctx *gin.Context) {
	var req dto.SemesterCreditRequest
	// An empty body means "use the configured defaults"
	if ctx.Request.ContentLength > 0 {
		if !bindJSON(ctx, &req) {
			return
		}
	}

	transactions, err := c.transactionService.IssueSemesterCredits(ctx, req.Amount, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Data: gin.H{
			"credited":     len(transactions),
			"transactions": transactions,
		},
		Timestamp: time.Now(),
	})
}

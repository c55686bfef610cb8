package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/app/services"
	"github.com/meritoapp/merito/internal/middleware"
)

// AdvantageController handles the advantage catalog and the redemption flow
type AdvantageController struct {
	advantageService  services.AdvantageService
	redemptionService services.RedemptionService
}

// NewAdvantageController creates a new AdvantageController
func NewAdvantageController(advantageService services.AdvantageService, redemptionService services.RedemptionService) *AdvantageController {
	return &AdvantageController{
		advantageService:  advantageService,
		redemptionService: redemptionService,
	}
}

// GetActiveAdvantages lists the redeemable catalog
// @Summary List active advantages
// @Tags advantages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Advantage}
// @Router /advantages [get]
func (c *AdvantageController) GetActiveAdvantages(ctx *gin.Context) {
	advantages, err := c.advantageService.GetActiveAdvantages(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantages,
		Timestamp: time.Now(),
	})
}

// GetAdvantageByID retrieves one advantage
// @Summary Get advantage
// @Tags advantages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advantage ID"
// @Success 200 {object} dto.APIResponse{data=models.Advantage}
// @Failure 404 {object} dto.ErrorResponse "Advantage not found"
// @Router /advantages/{id} [get]
func (c *AdvantageController) GetAdvantageByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	advantage, err := c.advantageService.GetAdvantageByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// GetMyAdvantages lists the acting company's advantages, inactive included
// @Summary List own advantages
// @Tags advantages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Advantage}
// @Router /advantages/mine [get]
func (c *AdvantageController) GetMyAdvantages(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	advantages, err := c.advantageService.GetMyAdvantages(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantages,
		Timestamp: time.Now(),
	})
}

// CreateAdvantage adds an advantage to the acting company's catalog
// @Summary Create advantage
// @Tags advantages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdvantageRequest true "Advantage data"
// @Success 201 {object} dto.APIResponse{data=models.Advantage} "Advantage created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /advantages [post]
func (c *AdvantageController) CreateAdvantage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAdvantageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	advantage, err := c.advantageService.CreateAdvantage(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// UpdateAdvantage applies partial changes to an owned advantage
// @Summary Update advantage
// @Tags advantages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advantage ID"
// @Param request body dto.UpdateAdvantageRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=models.Advantage}
// @Failure 403 {object} dto.ErrorResponse "Advantage belongs to another company"
// @Failure 404 {object} dto.ErrorResponse "Advantage not found"
// @Router /advantages/{id} [put]
func (c *AdvantageController) UpdateAdvantage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdvantageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	advantage, err := c.advantageService.UpdateAdvantage(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// ToggleAdvantageActive flips the advantage listing flag
// @Summary Toggle advantage active flag
// @Tags advantages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advantage ID"
// @Success 200 {object} dto.APIResponse{data=models.Advantage}
// @Router /advantages/{id}/toggle-active [patch]
func (c *AdvantageController) ToggleAdvantageActive(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	advantage, err := c.advantageService.GetAdvantageByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.advantageService.SetAdvantageActive(ctx, userID, id, !advantage.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	advantage.IsActive = !advantage.IsActive
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// DeleteAdvantage removes an owned advantage
// @Summary Delete advantage
// @Tags advantages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advantage ID"
// @Success 200 {object} dto.APIResponse "Advantage deleted"
// @Router /advantages/{id} [delete]
func (c *AdvantageController) DeleteAdvantage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.advantageService.DeleteAdvantage(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Advantage deleted",
		Timestamp: time.Now(),
	})
}

// RedeemAdvantage exchanges coins for a coupon
// @Summary Redeem advantage
// @Description Debits the student's balance and issues a coupon code, atomically
// @Tags advantages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advantage ID"
// @Success 201 {object} dto.APIResponse{data=dto.RedeemResponse} "Coupon issued"
// @Failure 400 {object} dto.ErrorResponse "Insufficient balance or duplicate redemption"
// @Failure 404 {object} dto.ErrorResponse "Advantage not found"
// @Router /advantages/{id}/redeem [post]
func (c *AdvantageController) RedeemAdvantage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	redemption, txn, err := c.redemptionService.RedeemAdvantage(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reason := ""
	if txn.Reason != nil {
		reason = *txn.Reason
	}
	resp := dto.RedeemResponse{
		Redemption: dto.RedemptionSummary{
			ID:        redemption.ID,
			Code:      redemption.Code,
			Status:    string(redemption.Status),
			CreatedAt: redemption.CreatedAt.Format(time.RFC3339),
		},
		Transaction: dto.TransactionSummary{
			ID:        txn.ID,
			Amount:    txn.Amount,
			Reason:    reason,
			CreatedAt: txn.CreatedAt.Format(time.RFC3339),
		},
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetMyRedemptions lists the authenticated student's redemption history
// @Summary List own redemptions
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RedemptionDetail}
// @Router /redemptions/mine [get]
func (c *AdvantageController) GetMyRedemptions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	redemptions, err := c.redemptionService.GetMyRedemptions(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      redemptions,
		Timestamp: time.Now(),
	})
}

// UpdateRedemptionStatus settles a pending coupon
// @Summary Settle redemption
// @Description Marks a pending coupon as completed or cancelled. Only the owning company may settle it.
// @Tags redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Redemption ID"
// @Param request body dto.UpdateRedemptionStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.RedemptionDetail}
// @Failure 400 {object} dto.ErrorResponse "Redemption already settled"
// @Failure 403 {object} dto.ErrorResponse "Redemption belongs to another company"
// @Failure 404 {object} dto.ErrorResponse "Redemption not found"
// @Router /redemptions/{id}/status [put]
func (c *AdvantageController) UpdateRedemptionStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRedemptionStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	redemption, err := c.redemptionService.UpdateRedemptionStatus(ctx, userID, id, models.RedemptionStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      redemption,
		Timestamp: time.Now(),
	})
}

// Demo endpoints: unauthenticated catalog management for trying out the API.

// GetAdvantagesDemo lists the active catalog without authentication
// @Summary List advantages (demo)
// @Tags demo
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Advantage}
// @Router /advantages/demo [get]
func (c *AdvantageController) GetAdvantagesDemo(ctx *gin.Context) {
	c.GetActiveAdvantages(ctx)
}

// CreateAdvantageDemo creates an advantage without authentication
// @Summary Create advantage (demo)
// @Tags demo
// @Accept json
// @Produce json
// @Param request body dto.CreateAdvantageDemoRequest true "Advantage data"
// @Success 201 {object} dto.APIResponse{data=models.Advantage}
// @Router /advantages/demo [post]
func (c *AdvantageController) CreateAdvantageDemo(ctx *gin.Context) {
	var req dto.CreateAdvantageDemoRequest
	if !bindJSON(ctx, &req) {
		return
	}

	advantage, err := c.advantageService.CreateAdvantageDemo(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// UpdateAdvantageDemo updates an advantage without authentication
// @Summary Update advantage (demo)
// @Tags demo
// @Accept json
// @Produce json
// @Param id path int true "Advantage ID"
// @Param request body dto.UpdateAdvantageRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=models.Advantage}
// @Router /advantages/demo/{id} [put]
func (c *AdvantageController) UpdateAdvantageDemo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdvantageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	advantage, err := c.advantageService.UpdateAdvantageDemo(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// ToggleAdvantageActiveDemo flips the advantage listing flag without authentication
// @Summary Toggle advantage active flag (demo)
// @Tags demo
// @Produce json
// @Param id path int true "Advantage ID"
// @Success 200 {object} dto.APIResponse{data=models.Advantage}
// @Failure 404 {object} dto.ErrorResponse "Advantage not found"
// @Router /advantages/demo/{id}/toggle-active [patch]
func (c *AdvantageController) ToggleAdvantageActiveDemo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	advantage, err := c.advantageService.GetAdvantageByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.advantageService.SetAdvantageActiveDemo(ctx, id, !advantage.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	advantage.IsActive = !advantage.IsActive
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      advantage,
		Timestamp: time.Now(),
	})
}

// DeleteAdvantageDemo deletes an advantage without authentication
// @Summary Delete advantage (demo)
// @Tags demo
// @Produce json
// @Param id path int true "Advantage ID"
// @Success 200 {object} dto.APIResponse "Advantage deleted"
// @Router /advantages/demo/{id} [delete]
func (c *AdvantageController) DeleteAdvantageDemo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.advantageService.DeleteAdvantageDemo(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Advantage deleted",
		Timestamp: time.Now(),
	})
}

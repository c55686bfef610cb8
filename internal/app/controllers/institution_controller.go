package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/app/services"
	"github.com/meritoapp/merito/internal/middleware"
)

// InstitutionController serves the institution catalog
type InstitutionController struct {
	institutionService services.InstitutionService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService services.InstitutionService) *InstitutionController {
	return &InstitutionController{institutionService: institutionService}
}

// GetAllInstitutions lists institutions for registration forms
// @Summary List institutions
// @Tags institutions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Institution}
// @Router /institutions [get]
func (c *InstitutionController) GetAllInstitutions(ctx *gin.Context) {
	institutions, err := c.institutionService.GetAllInstitutions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      institutions,
		Timestamp: time.Now(),
	})
}

// GetInstitutionByID retrieves one institution
// @Summary Get institution
// @Tags institutions
// @Produce json
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=models.Institution}
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetInstitutionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	institution, err := c.institutionService.GetInstitutionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      institution,
		Timestamp: time.Now(),
	})
}

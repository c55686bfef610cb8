package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/app/services"
	"github.com/meritoapp/merito/internal/middleware"
)

// CompanyController handles partner company management
type CompanyController struct {
	companyService services.CompanyService
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService services.CompanyService) *CompanyController {
	return &CompanyController{companyService: companyService}
}

// CreateCompany provisions a company with its account
// @Summary Create company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCompanyRequest true "Company data"
// @Success 201 {object} dto.APIResponse{data=models.Company} "Company created"
// @Failure 409 {object} dto.ErrorResponse "Email or CNPJ already registered"
// @Router /companies [post]
func (c *CompanyController) CreateCompany(ctx *gin.Context) {
	var req dto.CreateCompanyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	company, err := c.companyService.CreateCompany(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      company,
		Timestamp: time.Now(),
	})
}

// GetAllCompanies lists all companies
// @Summary List companies
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Company}
// @Router /companies [get]
func (c *CompanyController) GetAllCompanies(ctx *gin.Context) {
	companies, err := c.companyService.GetAllCompanies(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      companies,
		Timestamp: time.Now(),
	})
}

// GetCompanyByID retrieves one company
// @Summary Get company
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /companies/{id} [get]
func (c *CompanyController) GetCompanyByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	company, err := c.companyService.GetCompanyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      company,
		Timestamp: time.Now(),
	})
}

// GetMyCompany retrieves the authenticated company's own profile
// @Summary Get own company profile
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Router /companies/me [get]
func (c *CompanyController) GetMyCompany(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	company, err := c.companyService.GetCompanyByUserID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      company,
		Timestamp: time.Now(),
	})
}

// UpdateCompany applies profile changes
// @Summary Update company
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Param request body dto.UpdateCompanyRequest true "Profile changes"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /companies/{id} [put]
func (c *CompanyController) UpdateCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	company, err := c.companyService.UpdateCompany(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      company,
		Timestamp: time.Now(),
	})
}

// ToggleCompanyActive flips the company listing flag
// @Summary Toggle company active flag
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /companies/{id}/toggle-active [patch]
func (c *CompanyController) ToggleCompanyActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	company, err := c.companyService.GetCompanyByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.companyService.SetCompanyActive(ctx, id, !company.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	company.IsActive = !company.IsActive
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      company,
		Timestamp: time.Now(),
	})
}

// DeleteCompany removes a company and its account
// @Summary Delete company
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse "Company deleted"
// @Failure 404 {object} dto.ErrorResponse "Company not found"
// @Router /companies/{id} [delete]
func (c *CompanyController) DeleteCompany(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.companyService.DeleteCompany(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Company deleted",
		Timestamp: time.Now(),
	})
}

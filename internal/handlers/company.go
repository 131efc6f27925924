package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meduzzen/company-directory-api/internal/apierrors"
	"github.com/meduzzen/company-directory-api/internal/dto"
	"github.com/meduzzen/company-directory-api/internal/middleware"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/services"
	"github.com/meduzzen/company-directory-api/internal/utils"
)

// CompanyHandler serves company CRUD endpoints.
type CompanyHandler struct {
	companyService *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompanyRequest is the company creation payload.
type CreateCompanyRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Location    string                   `json:"location"`
	Employees   *int                     `json:"employees"`
	Established *int                     `json:"established"`
	Services    []string                 `json:"services"`
	Visibility  models.CompanyVisibility `json:"visibility"`
}

// UpdateCompanyRequest is a partial company update payload.
type UpdateCompanyRequest struct {
	Name        *string                   `json:"name"`
	Description *string                   `json:"description"`
	Location    *string                   `json:"location"`
	Employees   *int                      `json:"employees"`
	Established *int                      `json:"established"`
	Services    []string                  `json:"services"`
	Visibility  *models.CompanyVisibility `json:"visibility"`
}

// ListCompanies returns a paginated company listing. Public read.
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	companies, total, err := h.companyService.ListCompanies(params)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompaniesListDTO(companies, total))
}

// GetCompany returns one company. Public read.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(id)
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// CreateCompany creates a company owned by the caller.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.CreateCompany(services.CreateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Employees:   req.Employees,
		Established: req.Established,
		Services:    req.Services,
		Visibility:  req.Visibility,
		OwnerID:     actorID,
	})
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// UpdateCompany applies a partial update. Owner-gated.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	company, err := h.companyService.UpdateCompany(id, actorID, services.UpdateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Employees:   req.Employees,
		Established: req.Established,
		Services:    req.Services,
		Visibility:  req.Visibility,
	})
	if err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// DeleteCompany removes a company. Owner-gated.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.companyService.DeleteCompany(id, actorID); err != nil {
		respondCompanyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Company deleted successfully"})
}

// ListOwnedCompanies returns the caller's companies, paginated.
func (h *CompanyHandler) ListOwnedCompanies(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	companies, total, err := h.companyService.ListOwnedCompanies(actorID, params)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompaniesListDTO(companies, total))
}

func respondCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCompanyOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCompanyNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCompanyName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/internhub/internal/app/forms"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/app/models/dto"
	"github.com/yigit/internhub/internal/middleware"
	"github.com/yigit/internhub/internal/pkg/filestorage"
)

// OrganizationRepository loads and stores organizations.
type OrganizationRepository interface {
	GetOrganizationByID(ctx context.Context, id int64) (*models.Organization, error)
	forms.OrganizationStore
}

// OrganizationController handles organization operations
type OrganizationController struct {
	organizations OrganizationRepository
	files         filestorage.FileStorage
	maxUpload     int64
}

// NewOrganizationController creates a new OrganizationController
func NewOrganizationController(organizations OrganizationRepository, files filestorage.FileStorage, maxUpload int64) *OrganizationController {
	return &OrganizationController{
		organizations: organizations,
		files:         files,
		maxUpload:     maxUpload,
	}
}

// CreateOrganization handles organization creation
// @Summary Create an organization
// @Description Registers a host organization, optionally with its logo
// @Tags organizations
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param tax_id formData string true "Tax ID (RUC)"
// @Param address formData string true "Address"
// @Param phone formData string true "Phone"
// @Param email formData string true "Email"
// @Param contact_person formData string true "Contact person"
// @Param sector formData string true "Sector"
// @Param description formData string true "Description"
// @Param logo formData file false "Logo"
// @Success 201 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization created successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations [post]
func (c *OrganizationController) CreateOrganization(ctx *gin.Context) {
	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	org, err := forms.NewOrganizationForm(nil, c.organizations, c.files, data).Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Message:   "Organization created successfully",
		Data:      dto.NewOrganizationResponse(org, c.files.URL),
		Timestamp: time.Now(),
	})
}

// UpdateOrganization handles organization updates
// @Summary Update an organization
// @Description Replaces the organization data; the logo is kept unless a new one is uploaded
// @Tags organizations
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Organization ID"
// @Param name formData string true "Name"
// @Param tax_id formData string true "Tax ID (RUC)"
// @Param address formData string true "Address"
// @Param phone formData string true "Phone"
// @Param email formData string true "Email"
// @Param contact_person formData string true "Contact person"
// @Param sector formData string true "Sector"
// @Param description formData string true "Description"
// @Param logo formData file false "New logo"
// @Success 200 {object} dto.APIResponse{data=dto.OrganizationResponse} "Organization updated successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 404 {object} dto.ErrorResponse "Organization not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /organizations/{id} [put]
func (c *OrganizationController) UpdateOrganization(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "organization")
	if !ok {
		return
	}

	instance, err := c.organizations.GetOrganizationByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	org, err := forms.NewOrganizationForm(instance, c.organizations, c.files, data).Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Organization updated successfully",
		Data:      dto.NewOrganizationResponse(org, c.files.URL),
		Timestamp: time.Now(),
	})
}

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
	"github.com/yigit/internhub/internal/pkg/helpers"
)

// OpportunityRepository loads and stores opportunities.
type OpportunityRepository interface {
	GetOpportunityByID(ctx context.Context, id int64) (*models.Opportunity, error)
	forms.OpportunityStore
}

// OpportunitySearch runs a validated search.
type OpportunitySearch interface {
	Search(ctx context.Context, filter models.OpportunityFilter, page, size int) (*dto.PaginatedResponse, error)
}

// OpportunityController handles opportunity operations
type OpportunityController struct {
	organizations forms.OrganizationSource
	opportunities OpportunityRepository
	search        OpportunitySearch
	maxUpload     int64
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(organizations forms.OrganizationSource, opportunities OpportunityRepository, search OpportunitySearch, maxUpload int64) *OpportunityController {
	return &OpportunityController{
		organizations: organizations,
		opportunities: opportunities,
		search:        search,
		maxUpload:     maxUpload,
	}
}

// OpportunityChoices lists the organizations offered by the opportunity forms
// @Summary Opportunity form choices
// @Description Returns the active organizations. With form=search the list starts with the "All organizations" option.
// @Tags opportunities
// @Produce json
// @Param form query string false "Form whose choices are returned (edit, search)"
// @Success 200 {object} dto.APIResponse{data=dto.FormChoicesResponse} "Choices retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /opportunities/choices [get]
func (c *OpportunityController) OpportunityChoices(ctx *gin.Context) {
	var choices []forms.Choice
	if ctx.Query("form") == "search" {
		form, err := forms.NewSearchForm(ctx.Request.Context(), c.organizations, forms.Data{})
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		choices = form.OrganizationChoices()
	} else {
		form, err := forms.NewOpportunityForm(ctx.Request.Context(), nil, c.organizations, c.opportunities, forms.Data{})
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		choices = form.OrganizationChoices()
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.FormChoicesResponse{Fields: map[string][]dto.ChoiceData{
			"organization": toChoiceData(choices),
		}},
		Timestamp: time.Now(),
	})
}

// SearchOpportunities handles the opportunity search
// @Summary Search opportunities
// @Description Lists opportunities matching every given criterion, ordered by start date
// @Tags opportunities
// @Produce json
// @Param title query string false "Title contains"
// @Param organization query int false "Organization ID"
// @Param sector query string false "Organization sector contains"
// @Param start_date_from query string false "Earliest start date (YYYY-MM-DD)"
// @Param start_date_to query string false "Latest start date (YYYY-MM-DD)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Opportunities retrieved successfully"
// @Failure 400 {object} dto.ValidationErrors "Search criteria did not validate"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /opportunities [get]
func (c *OpportunityController) SearchOpportunities(ctx *gin.Context) {
	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	form, err := forms.NewSearchForm(ctx.Request.Context(), c.organizations, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filter, err := form.Filter(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	result, err := c.search.Search(ctx.Request.Context(), filter, page, size)
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

// CreateOpportunity handles opportunity creation
// @Summary Create an opportunity
// @Description Publishes an internship opportunity of an active organization
// @Tags opportunities
// @Accept x-www-form-urlencoded
// @Produce json
// @Param organization formData int true "Organization ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param requirements formData string true "Requirements"
// @Param duration_weeks formData int true "Duration in weeks"
// @Param weekly_hours formData int true "Weekly hours"
// @Param start_date formData string true "Start date (YYYY-MM-DD)"
// @Param end_date formData string true "End date (YYYY-MM-DD)"
// @Param total_slots formData int true "Total slots"
// @Param application_deadline formData string true "Application deadline (YYYY-MM-DDTHH:MM)"
// @Success 201 {object} dto.APIResponse{data=dto.OpportunityResponse} "Opportunity created successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /opportunities [post]
func (c *OpportunityController) CreateOpportunity(ctx *gin.Context) {
	c.saveOpportunity(ctx, nil, http.StatusCreated, "Opportunity created successfully")
}

// UpdateOpportunity handles opportunity updates
// @Summary Update an opportunity
// @Description Replaces every field of an opportunity
// @Tags opportunities
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} dto.APIResponse{data=dto.OpportunityResponse} "Opportunity updated successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /opportunities/{id} [put]
func (c *OpportunityController) UpdateOpportunity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "opportunity")
	if !ok {
		return
	}

	instance, err := c.opportunities.GetOpportunityByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.saveOpportunity(ctx, instance, http.StatusOK, "Opportunity updated successfully")
}

func (c *OpportunityController) saveOpportunity(ctx *gin.Context, instance *models.Opportunity, status int, message string) {
	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	form, err := forms.NewOpportunityForm(ctx.Request.Context(), instance, c.organizations, c.opportunities, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	opp, err := form.Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(status, dto.APIResponse{
		Success:   true,
		Message:   message,
		Data:      dto.NewOpportunityResponse(opp),
		Timestamp: time.Now(),
	})
}

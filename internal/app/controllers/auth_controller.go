package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/internhub/internal/app/forms"
	"github.com/yigit/internhub/internal/app/models/dto"
	"github.com/yigit/internhub/internal/middleware"
	"github.com/yigit/internhub/internal/pkg/filestorage"
)

// AuthController handles student sign-up
type AuthController struct {
	careers   forms.CareerSource
	identity  forms.Identity
	files     filestorage.FileStorage
	maxUpload int64
	logger    zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(careers forms.CareerSource, identity forms.Identity, files filestorage.FileStorage, maxUpload int64, logger zerolog.Logger) *AuthController {
	return &AuthController{
		careers:   careers,
		identity:  identity,
		files:     files,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// RegistrationChoices lists the careers a student may register for
// @Summary Registration form choices
// @Description Returns the active careers offered by the registration form
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormChoicesResponse} "Choices retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register/choices [get]
func (c *AuthController) RegistrationChoices(ctx *gin.Context) {
	form, err := forms.NewRegistrationForm(ctx.Request.Context(), c.careers, c.identity, c.files, forms.Data{})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.FormChoicesResponse{Fields: map[string][]dto.ChoiceData{
			"career": toChoiceData(form.CareerChoices()),
		}},
		Timestamp: time.Now(),
	})
}

// Register handles student registration
// @Summary Register a new student
// @Description Creates a user account and its student profile from a multipart form
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email"
// @Param password1 formData string true "Password"
// @Param password2 formData string true "Password confirmation"
// @Param student_code formData string true "Student code"
// @Param career formData int true "Career ID"
// @Param current_term formData int true "Current term (1-12)"
// @Param phone formData string false "Phone"
// @Param address formData string false "Address"
// @Param birth_date formData string false "Birth date (YYYY-MM-DD)"
// @Param photo formData file false "Profile photo"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Student registered successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	form, err := forms.NewRegistrationForm(ctx.Request.Context(), c.careers, c.identity, c.files, data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := form.Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Student registered")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success: true,
		Message: "Student registered successfully",
		Data: dto.RegistrationResponse{
			User:    dto.NewUserResponse(user),
			Student: dto.NewStudentResponse(form.Student(), c.files.URL),
		},
		Timestamp: time.Now(),
	})
}

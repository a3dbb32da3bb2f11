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

// StudentRepository loads and updates student profiles.
type StudentRepository interface {
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	forms.StudentStore
}

// StudentController handles student profile operations
type StudentController struct {
	students  StudentRepository
	files     filestorage.FileStorage
	maxUpload int64
}

// NewStudentController creates a new StudentController
func NewStudentController(students StudentRepository, files filestorage.FileStorage, maxUpload int64) *StudentController {
	return &StudentController{
		students:  students,
		files:     files,
		maxUpload: maxUpload,
	}
}

// UpdateProfile handles the student profile edit
// @Summary Update a student profile
// @Description Updates term, contact data, birth date and optionally the photo of a student
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param current_term formData int true "Current term (1-12)"
// @Param phone formData string false "Phone"
// @Param address formData string false "Address"
// @Param birth_date formData string false "Birth date (YYYY-MM-DD)"
// @Param photo formData file false "New profile photo"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student")
	if !ok {
		return
	}

	student, err := c.students.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	updated, err := forms.NewStudentUpdateForm(student, c.students, c.files, data).Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Profile updated successfully",
		Data:      dto.NewStudentResponse(updated, c.files.URL),
		Timestamp: time.Now(),
	})
}

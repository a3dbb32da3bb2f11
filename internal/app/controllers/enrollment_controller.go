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

// EnrollmentRepository loads enrollments and stores their observations.
type EnrollmentRepository interface {
	GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error)
	forms.EnrollmentStore
}

// DocumentRepository loads and stores enrollment documents.
type DocumentRepository interface {
	GetDocument(ctx context.Context, enrollmentID, documentID int64) (*models.EnrollmentDocument, error)
	forms.DocumentStore
}

// EnrollmentController handles enrollment notes and documents
type EnrollmentController struct {
	enrollments EnrollmentRepository
	documents   DocumentRepository
	files       filestorage.FileStorage
	maxUpload   int64
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollments EnrollmentRepository, documents DocumentRepository, files filestorage.FileStorage, maxUpload int64) *EnrollmentController {
	return &EnrollmentController{
		enrollments: enrollments,
		documents:   documents,
		files:       files,
		maxUpload:   maxUpload,
	}
}

// UpdateEnrollment handles enrollment observation edits
// @Summary Update enrollment observations
// @Tags enrollments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param observations formData string false "Observations"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "enrollment")
	if !ok {
		return
	}

	enrollment, err := c.enrollments.GetEnrollmentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	updated, err := forms.NewEnrollmentForm(enrollment, c.enrollments, data).Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Enrollment updated successfully",
		Data:      dto.NewEnrollmentResponse(updated),
		Timestamp: time.Now(),
	})
}

// DocumentChoices lists the accepted document types
// @Summary Document form choices
// @Tags enrollments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FormChoicesResponse} "Choices retrieved successfully"
// @Router /documents/choices [get]
func (c *EnrollmentController) DocumentChoices(ctx *gin.Context) {
	form := forms.NewDocumentForm(0, nil, c.documents, c.files, forms.Data{})
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.FormChoicesResponse{Fields: map[string][]dto.ChoiceData{
			"type": toChoiceData(form.TypeChoices()),
		}},
		Timestamp: time.Now(),
	})
}

// CreateDocument handles document uploads
// @Summary Attach a document to an enrollment
// @Tags enrollments
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param type formData string true "Document type (CV, COVER_LETTER, AGREEMENT, REPORT, CERTIFICATE, OTHER)"
// @Param name formData string true "Name"
// @Param file formData file true "File"
// @Success 201 {object} dto.APIResponse{data=dto.DocumentResponse} "Document uploaded successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/documents [post]
func (c *EnrollmentController) CreateDocument(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id", "enrollment")
	if !ok {
		return
	}

	if _, err := c.enrollments.GetEnrollmentByID(ctx.Request.Context(), enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.saveDocument(ctx, enrollmentID, nil, http.StatusCreated, "Document uploaded successfully")
}

// UpdateDocument handles document edits
// @Summary Update an enrollment document
// @Description Updates type and name; the stored file is kept unless a new one is uploaded
// @Tags enrollments
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param docId path int true "Document ID"
// @Param type formData string true "Document type"
// @Param name formData string true "Name"
// @Param file formData file false "New file"
// @Success 200 {object} dto.APIResponse{data=dto.DocumentResponse} "Document updated successfully"
// @Failure 400 {object} dto.ValidationErrors "Form did not validate"
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/documents/{docId} [put]
func (c *EnrollmentController) UpdateDocument(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "id", "enrollment")
	if !ok {
		return
	}
	documentID, ok := parseIDParam(ctx, "docId", "document")
	if !ok {
		return
	}

	doc, err := c.documents.GetDocument(ctx.Request.Context(), enrollmentID, documentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.saveDocument(ctx, enrollmentID, doc, http.StatusOK, "Document updated successfully")
}

func (c *EnrollmentController) saveDocument(ctx *gin.Context, enrollmentID int64, instance *models.EnrollmentDocument, status int, message string) {
	data, ok := bindFormData(ctx, c.maxUpload)
	if !ok {
		return
	}

	doc, err := forms.NewDocumentForm(enrollmentID, instance, c.documents, c.files, data).Save(ctx.Request.Context(), true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(status, dto.APIResponse{
		Success:   true,
		Message:   message,
		Data:      dto.NewDocumentResponse(doc, c.files.URL),
		Timestamp: time.Now(),
	})
}

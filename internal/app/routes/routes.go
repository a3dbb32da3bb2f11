package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/internhub/internal/app/controllers"
	"github.com/yigit/internhub/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1.
type Controllers struct {
	Auth         *controllers.AuthController
	Student      *controllers.StudentController
	Organization *controllers.OrganizationController
	Opportunity  *controllers.OpportunityController
	Enrollment   *controllers.EnrollmentController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, maxBodyBytes int64) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.BodyLimit(maxBodyBytes))

	auth := v1.Group("/auth")
	{
		auth.GET("/register/choices", c.Auth.RegistrationChoices)
		auth.POST("/register", c.Auth.Register)
	}

	students := v1.Group("/students")
	{
		students.PUT("/:id/profile", c.Student.UpdateProfile)
	}

	organizations := v1.Group("/organizations")
	{
		organizations.POST("", c.Organization.CreateOrganization)
		organizations.PUT("/:id", c.Organization.UpdateOrganization)
	}

	opportunities := v1.Group("/opportunities")
	{
		opportunities.GET("", c.Opportunity.SearchOpportunities)
		opportunities.GET("/choices", c.Opportunity.OpportunityChoices)
		opportunities.POST("", c.Opportunity.CreateOpportunity)
		opportunities.PUT("/:id", c.Opportunity.UpdateOpportunity)
	}

	enrollments := v1.Group("/enrollments")
	{
		enrollments.PUT("/:id", c.Enrollment.UpdateEnrollment)
		enrollments.POST("/:id/documents", c.Enrollment.CreateDocument)
		enrollments.PUT("/:id/documents/:docId", c.Enrollment.UpdateDocument)
	}

	v1.GET("/documents/choices", c.Enrollment.DocumentChoices)
}

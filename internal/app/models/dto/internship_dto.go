package dto

import "github.com/yigit/internhub/internal/app/models"

const dateLayout = "2006-01-02"

// FileURLFunc resolves a stored file reference to a public URL.
type FileURLFunc func(ref string) string

func resolve(url FileURLFunc, ref string) string {
	if ref == "" || url == nil {
		return ref
	}
	return url(ref)
}

// ChoiceData is one option of a choice field.
type ChoiceData struct {
	Value string `json:"value" example:"2"`
	Label string `json:"label" example:"Software Engineering"`
}

// FormChoicesResponse lists the options of the choice fields of a form,
// keyed by field name.
type FormChoicesResponse struct {
	Fields map[string][]ChoiceData `json:"fields"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID        int64  `json:"id" example:"5"`
	Username  string `json:"username" example:"mgarcia"`
	Email     string `json:"email" example:"mgarcia@uni.edu.pe"`
	FirstName string `json:"firstName" example:"María"`
	LastName  string `json:"lastName" example:"García"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// StudentResponse is the public view of a student profile.
type StudentResponse struct {
	ID          int64   `json:"id" example:"1"`
	UserID      int64   `json:"userId" example:"5"`
	Code        string  `json:"code" example:"20231045"`
	CareerID    int64   `json:"careerId" example:"2"`
	CurrentTerm int     `json:"currentTerm" example:"6"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty" example:"2003-04-17"`
	PhotoURL    string  `json:"photoUrl,omitempty"`
}

func NewStudentResponse(s *models.Student, url FileURLFunc) StudentResponse {
	resp := StudentResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Code:        s.Code,
		CareerID:    s.CareerID,
		CurrentTerm: s.CurrentTerm,
		Phone:       s.Phone,
		Address:     s.Address,
		PhotoURL:    resolve(url, s.Photo),
	}
	if s.BirthDate != nil {
		formatted := s.BirthDate.Format(dateLayout)
		resp.BirthDate = &formatted
	}
	return resp
}

// RegistrationResponse is returned after a student signs up.
type RegistrationResponse struct {
	User    UserResponse    `json:"user"`
	Student StudentResponse `json:"student"`
}

// OrganizationResponse is an organization with its logo URL resolved.
type OrganizationResponse struct {
	models.Organization
	LogoURL string `json:"logoUrl,omitempty"`
}

func NewOrganizationResponse(o *models.Organization, url FileURLFunc) OrganizationResponse {
	return OrganizationResponse{Organization: *o, LogoURL: resolve(url, o.Logo)}
}

// OpportunityResponse is an opportunity with dates rendered as dates.
type OpportunityResponse struct {
	ID                  int64  `json:"id"`
	OrganizationID      int64  `json:"organizationId"`
	OrganizationName    string `json:"organizationName,omitempty"`
	Sector              string `json:"sector,omitempty"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Requirements        string `json:"requirements"`
	DurationWeeks       int    `json:"durationWeeks"`
	WeeklyHours         int    `json:"weeklyHours"`
	StartDate           string `json:"startDate" example:"2026-03-02"`
	EndDate             string `json:"endDate" example:"2026-05-22"`
	TotalSlots          int    `json:"totalSlots"`
	ApplicationDeadline string `json:"applicationDeadline" example:"2026-02-15T18:00:00Z"`
}

func NewOpportunityResponse(o *models.Opportunity) OpportunityResponse {
	resp := OpportunityResponse{
		ID:                  o.ID,
		OrganizationID:      o.OrganizationID,
		Title:               o.Title,
		Description:         o.Description,
		Requirements:        o.Requirements,
		DurationWeeks:       o.DurationWeeks,
		WeeklyHours:         o.WeeklyHours,
		StartDate:           o.StartDate.Format(dateLayout),
		EndDate:             o.EndDate.Format(dateLayout),
		TotalSlots:          o.TotalSlots,
		ApplicationDeadline: o.ApplicationDeadline.Format("2006-01-02T15:04:05Z07:00"),
	}
	if o.Organization != nil {
		resp.OrganizationName = o.Organization.Name
		resp.Sector = o.Organization.Sector
	}
	return resp
}

// EnrollmentResponse is the editable view of an enrollment.
type EnrollmentResponse struct {
	ID            int64  `json:"id"`
	StudentID     int64  `json:"studentId"`
	OpportunityID int64  `json:"opportunityId"`
	Status        string `json:"status" example:"PENDING"`
	Observations  string `json:"observations"`
}

func NewEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:            e.ID,
		StudentID:     e.StudentID,
		OpportunityID: e.OpportunityID,
		Status:        string(e.Status),
		Observations:  e.Observations,
	}
}

// DocumentResponse is an enrollment document with its file URL resolved.
type DocumentResponse struct {
	models.EnrollmentDocument
	FileURL string `json:"fileUrl"`
}

func NewDocumentResponse(d *models.EnrollmentDocument, url FileURLFunc) DocumentResponse {
	return DocumentResponse{EnrollmentDocument: *d, FileURL: resolve(url, d.File)}
}

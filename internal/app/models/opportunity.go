package models

import "time"

// Opportunity is an internship offering published by an organization
// ('opportunities' table).
type Opportunity struct {
	ID                  int64     `json:"id" db:"id"`
	OrganizationID      int64     `json:"organizationId" db:"organization_id"`
	Title               string    `json:"title" db:"title" example:"Warehouse data analyst intern"`
	Description         string    `json:"description" db:"description"`
	Requirements        string    `json:"requirements" db:"requirements"`
	DurationWeeks       int       `json:"durationWeeks" db:"duration_weeks" example:"12"`
	WeeklyHours         int       `json:"weeklyHours" db:"weekly_hours" example:"20"`
	StartDate           time.Time `json:"startDate" db:"start_date"`
	EndDate             time.Time `json:"endDate" db:"end_date"`
	TotalSlots          int       `json:"totalSlots" db:"total_slots" example:"3"`
	ApplicationDeadline time.Time `json:"applicationDeadline" db:"application_deadline"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`

	Organization *Organization `json:"organization,omitempty"`
}

// OpportunityFilter is the validated outcome of an opportunity search.
// Zero values mean "no restriction".
type OpportunityFilter struct {
	Title          string     `json:"title,omitempty"`
	OrganizationID *int64     `json:"organizationId,omitempty"`
	Sector         string     `json:"sector,omitempty"`
	StartFrom      *time.Time `json:"startFrom,omitempty"`
	StartTo        *time.Time `json:"startTo,omitempty"`
}

// IsEmpty reports whether the filter restricts nothing.
func (f OpportunityFilter) IsEmpty() bool {
	return f.Title == "" && f.OrganizationID == nil && f.Sector == "" && f.StartFrom == nil && f.StartTo == nil
}

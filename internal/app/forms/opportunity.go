package forms

import (
	"context"
	"errors"
	"time"

	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/apperrors"
)

// OpportunityInput is the cleaned data of an OpportunityForm. Date order
// and slot counts are stored as submitted; integers only have to fit the
// INTEGER columns.
type OpportunityInput struct {
	OrganizationID      *int64     `form:"organization" validate:"required"`
	Title               string     `form:"title" validate:"required,max=200"`
	Description         string     `form:"description" validate:"required"`
	Requirements        string     `form:"requirements" validate:"required"`
	DurationWeeks       *int       `form:"duration_weeks" validate:"required,min=-2147483648,max=2147483647"`
	WeeklyHours         *int       `form:"weekly_hours" validate:"required,min=-2147483648,max=2147483647"`
	StartDate           *time.Time `form:"start_date" validate:"required"`
	EndDate             *time.Time `form:"end_date" validate:"required"`
	TotalSlots          *int       `form:"total_slots" validate:"required,min=-2147483648,max=2147483647"`
	ApplicationDeadline *time.Time `form:"application_deadline" validate:"required"`
}

// OpportunityForm creates or edits an internship opportunity. Only active
// organizations can own it.
type OpportunityForm struct {
	form
	instance      *models.Opportunity
	organizations *ModelChoices[*models.Organization]
	store         OpportunityStore
	cleaned       OpportunityInput
}

// NewOpportunityForm loads the active organizations and binds data;
// instance is nil for a new opportunity.
func NewOpportunityForm(ctx context.Context, instance *models.Opportunity, orgs OrganizationSource, store OpportunityStore, data Data) (*OpportunityForm, error) {
	choices, err := activeOrganizations(ctx, orgs)
	if err != nil {
		return nil, err
	}
	f := &OpportunityForm{instance: instance, organizations: choices, store: store}
	f.form = newForm(data, f.clean)
	return f, nil
}

// OrganizationChoices lists the organizations the opportunity may belong to.
func (f *OpportunityForm) OrganizationChoices() []Choice {
	return f.organizations.Options()
}

func (f *OpportunityForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	in := OpportunityInput{
		OrganizationID:      d.choiceKey("organization"),
		Title:               d.str("title"),
		Description:         d.str("description"),
		Requirements:        d.str("requirements"),
		DurationWeeks:       d.integer("duration_weeks"),
		WeeklyHours:         d.integer("weekly_hours"),
		StartDate:           d.date("start_date"),
		EndDate:             d.date("end_date"),
		TotalSlots:          d.integer("total_slots"),
		ApplicationDeadline: d.dateTime("application_deadline"),
	}
	checkConstraints(&in, f.errors)

	if in.OrganizationID != nil && !f.errors.Has("organization") {
		if _, ok := f.organizations.Lookup(*in.OrganizationID); !ok {
			f.errors.Add("organization", msgInvalidChoice)
		}
	}

	f.cleaned = in
	return nil
}

func (f *OpportunityForm) Save(ctx context.Context, commit bool) (*models.Opportunity, error) {
	if err := f.ensureValid(ctx); err != nil {
		return nil, err
	}
	in := f.cleaned

	opp := &models.Opportunity{}
	if f.instance != nil {
		copied := *f.instance
		opp = &copied
	}
	opp.OrganizationID = *in.OrganizationID
	opp.Title = in.Title
	opp.Description = in.Description
	opp.Requirements = in.Requirements
	opp.DurationWeeks = *in.DurationWeeks
	opp.WeeklyHours = *in.WeeklyHours
	opp.StartDate = *in.StartDate
	opp.EndDate = *in.EndDate
	opp.TotalSlots = *in.TotalSlots
	opp.ApplicationDeadline = *in.ApplicationDeadline
	opp.Organization, _ = f.organizations.Lookup(opp.OrganizationID)
	if !commit {
		return opp, nil
	}

	var err error
	if f.instance == nil {
		err = f.store.CreateOpportunity(ctx, opp)
	} else {
		err = f.store.UpdateOpportunity(ctx, opp)
	}
	if err != nil {
		// the organization row was deleted after construction
		if errors.Is(err, apperrors.ErrOrganizationNotFound) {
			return nil, f.reject("organization", msgInvalidChoice)
		}
		return nil, err
	}
	return opp, nil
}

package forms

import (
	"context"
	"time"

	"github.com/yigit/internhub/internal/app/models"
)

// AllOrganizations labels the blank organization option of the search.
const AllOrganizations = "All organizations"

// SearchInput is the cleaned data of a SearchForm.
type SearchInput struct {
	Title          string     `form:"title" validate:"max=200"`
	OrganizationID *int64     `form:"organization"`
	Sector         string     `form:"sector" validate:"max=100"`
	StartDateFrom  *time.Time `form:"start_date_from"`
	StartDateTo    *time.Time `form:"start_date_to"`
}

// SearchForm collects the criteria of an opportunity search. Every field
// is optional; an empty submission searches everything.
type SearchForm struct {
	form
	organizations *ModelChoices[*models.Organization]
	cleaned       SearchInput
}

// NewSearchForm loads the active organizations and binds data.
func NewSearchForm(ctx context.Context, orgs OrganizationSource, data Data) (*SearchForm, error) {
	choices, err := activeOrganizations(ctx, orgs)
	if err != nil {
		return nil, err
	}
	f := &SearchForm{organizations: choices.withEmpty(AllOrganizations)}
	f.form = newForm(data, f.clean)
	return f, nil
}

func (f *SearchForm) OrganizationChoices() []Choice {
	return f.organizations.Options()
}

func (f *SearchForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	in := SearchInput{
		Title:          d.str("title"),
		OrganizationID: d.choiceKey("organization"),
		Sector:         d.str("sector"),
		StartDateFrom:  d.date("start_date_from"),
		StartDateTo:    d.date("start_date_to"),
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

// Filter returns the validated criteria. It fails like Save when the
// submission is unbound or invalid.
func (f *SearchForm) Filter(ctx context.Context) (models.OpportunityFilter, error) {
	if err := f.ensureValid(ctx); err != nil {
		return models.OpportunityFilter{}, err
	}
	in := f.cleaned
	return models.OpportunityFilter{
		Title:          in.Title,
		OrganizationID: in.OrganizationID,
		Sector:         in.Sector,
		StartFrom:      in.StartDateFrom,
		StartTo:        in.StartDateTo,
	}, nil
}

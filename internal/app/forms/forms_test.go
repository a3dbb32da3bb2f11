package forms

import (
	"context"
	"errors"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/apperrors"
)

func TestStudentUpdateTermRange(t *testing.T) {
	student := &models.Student{ID: 7, UserID: 3, Code: "20231045", CareerID: 1, CurrentTerm: 5}
	for term, valid := range map[string]bool{"0": false, "1": true, "12": true, "13": false, "": false} {
		f := NewStudentUpdateForm(student, newMemStore(), &fakeFiles{}, Data{Values: values("current_term", term)})
		assert.Equal(t, valid, f.IsValid(context.Background()), "term %q", term)
	}
}

func TestStudentUpdateSave(t *testing.T) {
	birth := time.Date(2003, 4, 17, 0, 0, 0, 0, time.UTC)
	student := &models.Student{ID: 7, UserID: 3, Code: "20231045", CareerID: 1, CurrentTerm: 5, Phone: "900000000", BirthDate: &birth, Photo: "students/photos/old.png"}
	v := values("current_term", "6", "phone", "987654321", "address", "Jr. Lampa 520")

	t.Run("keeps photo", func(t *testing.T) {
		store, files := newMemStore(), &fakeFiles{}
		f := NewStudentUpdateForm(student, store, files, Data{Values: v})
		saved, err := f.Save(context.Background(), true)
		require.NoError(t, err)

		assert.Equal(t, 6, saved.CurrentTerm)
		assert.Equal(t, "987654321", saved.Phone)
		assert.Equal(t, "Jr. Lampa 520", saved.Address)
		assert.Nil(t, saved.BirthDate)
		assert.Equal(t, "students/photos/old.png", saved.Photo)
		assert.Equal(t, "20231045", saved.Code)
		assert.Equal(t, []*models.Student{saved}, store.updatedStudents)
		assert.Equal(t, 5, student.CurrentTerm, "instance is not mutated")
	})

	t.Run("replaces photo", func(t *testing.T) {
		store, files := newMemStore(), &fakeFiles{}
		photo := fileHeader(t, "photo", "new.png", pngBytes(t))
		f := NewStudentUpdateForm(student, store, files, Data{Values: v, Files: map[string]*multipart.FileHeader{"photo": photo}})
		saved, err := f.Save(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "students/photos/file-1.png", saved.Photo)
	})

	t.Run("failed update drops new photo", func(t *testing.T) {
		store, files := newMemStore(), &fakeFiles{}
		store.writeErr = apperrors.ErrStudentNotFound
		photo := fileHeader(t, "photo", "new.png", pngBytes(t))
		f := NewStudentUpdateForm(student, store, files, Data{Values: v, Files: map[string]*multipart.FileHeader{"photo": photo}})
		_, err := f.Save(context.Background(), true)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
		assert.Equal(t, files.saved, files.deleted)
	})

	t.Run("no commit", func(t *testing.T) {
		store, files := newMemStore(), &fakeFiles{}
		f := NewStudentUpdateForm(student, store, files, Data{Values: v})
		saved, err := f.Save(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 6, saved.CurrentTerm)
		assert.Empty(t, store.updatedStudents)
	})
}

func organizationValues() url.Values {
	return values(
		"name", "Andes Logistics S.A.C.",
		"tax_id", "20512345678",
		"address", "Av. Argentina 3250, Callao",
		"phone", "014567890",
		"email", "practicas@andeslogistics.pe",
		"contact_person", "Rosa Quispe",
		"sector", "Logistics",
		"description", "Freight forwarding and warehousing.",
	)
}

func TestOrganizationRequiredFields(t *testing.T) {
	f := NewOrganizationForm(nil, newMemStore(), &fakeFiles{}, Data{Values: url.Values{}})
	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{
		"address", "contact_person", "description", "email", "name", "phone", "sector", "tax_id",
	}, f.Errors().Fields())
}

func TestOrganizationFieldConstraints(t *testing.T) {
	cases := map[string]struct {
		field, value, msg string
	}{
		"email":  {"email", "not-an-email", msgEmail},
		"tax id": {"tax_id", "205123456789", "Ensure this value has at most 11 characters (it has 12)."},
		"phone":  {"phone", strings.Repeat("9", 16), "Ensure this value has at most 15 characters (it has 16)."},
		"name":   {"name", strings.Repeat("n", 201), "Ensure this value has at most 200 characters (it has 201)."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v := organizationValues()
			v.Set(tc.field, tc.value)
			f := NewOrganizationForm(nil, newMemStore(), &fakeFiles{}, Data{Values: v})
			assert.False(t, f.IsValid(context.Background()))
			assert.Equal(t, []string{tc.msg}, f.Errors().Get(tc.field))
		})
	}
}

func TestOrganizationCreate(t *testing.T) {
	store, files := newMemStore(), &fakeFiles{}
	logo := fileHeader(t, "logo", "andes.png", pngBytes(t))
	f := NewOrganizationForm(nil, store, files, Data{Values: organizationValues(), Files: map[string]*multipart.FileHeader{"logo": logo}})

	org, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.NotZero(t, org.ID)
	assert.True(t, org.Active)
	assert.Equal(t, "Logistics", org.Sector)
	assert.Equal(t, OrganizationLogoFolder+"/file-1.png", org.Logo)
	assert.Equal(t, []*models.Organization{org}, store.createdOrgs)
	assert.Empty(t, store.updatedOrgs)
}

func TestOrganizationUpdateKeepsIdentityAndFlag(t *testing.T) {
	store := newMemStore()
	existing := &models.Organization{ID: 12, Name: "Old name", Logo: "organizations/logos/old.png", Active: false}
	f := NewOrganizationForm(existing, store, &fakeFiles{}, Data{Values: organizationValues()})

	org, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(12), org.ID)
	assert.False(t, org.Active)
	assert.Equal(t, "organizations/logos/old.png", org.Logo)
	assert.Equal(t, "Andes Logistics S.A.C.", org.Name)
	assert.Equal(t, []*models.Organization{org}, store.updatedOrgs)
	assert.Equal(t, "Old name", existing.Name)
}

func opportunityValues() url.Values {
	return values(
		"organization", "10",
		"title", "Warehouse data analyst intern",
		"description", "Support the inventory analytics team.",
		"requirements", "SQL, spreadsheets",
		"duration_weeks", "12",
		"weekly_hours", "20",
		"start_date", "2026-03-02",
		"end_date", "2026-05-22",
		"total_slots", "3",
		"application_deadline", "2026-02-15T18:00",
	)
}

func newOpportunityForm(t *testing.T, store *memStore, instance *models.Opportunity, v url.Values) *OpportunityForm {
	t.Helper()
	f, err := NewOpportunityForm(context.Background(), instance, store, store, Data{Values: v})
	require.NoError(t, err)
	return f
}

func TestOpportunityExcludesInactiveOrganizations(t *testing.T) {
	store := newMemStore()
	f := newOpportunityForm(t, store, nil, nil)
	assert.Equal(t, []Choice{
		{Value: "10", Label: "Andes Logistics S.A.C."},
		{Value: "11", Label: "Pacific Retail"},
	}, f.OrganizationChoices())

	v := opportunityValues()
	v.Set("organization", "12")
	f = newOpportunityForm(t, store, nil, v)
	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{msgInvalidChoice}, f.Errors().Get("organization"))
}

func TestOpportunityCreate(t *testing.T) {
	store := newMemStore()
	f := newOpportunityForm(t, store, nil, opportunityValues())

	opp, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.NotZero(t, opp.ID)
	assert.Equal(t, int64(10), opp.OrganizationID)
	assert.Equal(t, "Andes Logistics S.A.C.", opp.Organization.Name)
	assert.Equal(t, 12, opp.DurationWeeks)
	assert.Equal(t, 20, opp.WeeklyHours)
	assert.Equal(t, 3, opp.TotalSlots)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), opp.StartDate)
	assert.Equal(t, time.Date(2026, 2, 15, 18, 0, 0, 0, time.UTC), opp.ApplicationDeadline)
	assert.Equal(t, []*models.Opportunity{opp}, store.createdOpps)
}

func TestOpportunityDoesNotCheckDateOrderOrSlots(t *testing.T) {
	v := opportunityValues()
	v.Set("end_date", "2026-01-01")
	v.Set("application_deadline", "2026-06-01 09:00")
	v.Set("total_slots", "-2")
	f := newOpportunityForm(t, newMemStore(), nil, v)
	assert.True(t, f.IsValid(context.Background()), f.Errors())
}

func TestOpportunityIntegersMustFitColumns(t *testing.T) {
	v := opportunityValues()
	v.Set("total_slots", "3000000000")
	v.Set("weekly_hours", "-3000000000")
	v.Set("duration_weeks", "2147483647")
	f := newOpportunityForm(t, newMemStore(), nil, v)

	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{"Ensure this value is less than or equal to 2147483647."}, f.Errors().Get("total_slots"))
	assert.Equal(t, []string{"Ensure this value is greater than or equal to -2147483648."}, f.Errors().Get("weekly_hours"))
	assert.False(t, f.Errors().Has("duration_weeks"))
}

func TestOpportunityDatesUseConfiguredTimeZone(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	SetTimeZone(lima)
	t.Cleanup(func() { SetTimeZone(nil) })

	f := newOpportunityForm(t, newMemStore(), nil, opportunityValues())
	opp, err := f.Save(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, opp.ApplicationDeadline.Equal(time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC)), opp.ApplicationDeadline)
	assert.True(t, opp.StartDate.Equal(time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC)), opp.StartDate)

	v := opportunityValues()
	v.Set("application_deadline", "2026-02-15T18:00:00Z")
	f = newOpportunityForm(t, newMemStore(), nil, v)
	opp, err = f.Save(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, opp.ApplicationDeadline.Equal(time.Date(2026, 2, 15, 18, 0, 0, 0, time.UTC)))
}

func TestOpportunityFieldErrors(t *testing.T) {
	v := opportunityValues()
	v.Del("requirements")
	v.Set("weekly_hours", "twenty")
	v.Set("start_date", "2026-13-40")
	v.Set("application_deadline", "soon")
	f := newOpportunityForm(t, newMemStore(), nil, v)

	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{msgRequired}, f.Errors().Get("requirements"))
	assert.Equal(t, []string{msgInteger}, f.Errors().Get("weekly_hours"))
	assert.Equal(t, []string{msgDate}, f.Errors().Get("start_date"))
	assert.Equal(t, []string{msgDateTime}, f.Errors().Get("application_deadline"))
}

func TestOpportunityUpdateWithDeletedOrganization(t *testing.T) {
	store := newMemStore()
	store.writeErr = apperrors.ErrOrganizationNotFound
	existing := &models.Opportunity{ID: 40, OrganizationID: 11}
	f := newOpportunityForm(t, store, existing, opportunityValues())

	_, err := f.Save(context.Background(), true)
	assert.ErrorIs(t, err, apperrors.ErrFormNotValid)
	assert.Equal(t, []string{msgInvalidChoice}, f.Errors().Get("organization"))
}

func TestEnrollmentObservations(t *testing.T) {
	store := newMemStore()
	enrollment := &models.Enrollment{ID: 5, StudentID: 7, OpportunityID: 40, Status: models.EnrollmentPending}

	f := NewEnrollmentForm(enrollment, store, Data{Values: url.Values{}})
	assert.True(t, f.IsValid(context.Background()))

	f = NewEnrollmentForm(enrollment, store, Data{Values: values("observations", "  Interview on Monday. ", "status", "ACCEPTED")})
	saved, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "Interview on Monday.", saved.Observations)
	assert.Equal(t, models.EnrollmentPending, saved.Status)
	assert.Equal(t, "Interview on Monday.", store.observations[5])
}

func TestDocumentCreate(t *testing.T) {
	store, files := newMemStore(), &fakeFiles{}
	file := fileHeader(t, "file", "cv.pdf", []byte("%PDF-1.7 résumé"))
	f := NewDocumentForm(5, nil, store, files, Data{
		Values: values("type", "CV", "name", "Curriculum 2026"),
		Files:  map[string]*multipart.FileHeader{"file": file},
	})

	doc, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(5), doc.EnrollmentID)
	assert.Equal(t, models.DocumentCV, doc.Type)
	assert.Equal(t, "enrollments/5/documents/file-1.pdf", doc.File)
	assert.Equal(t, []*models.EnrollmentDocument{doc}, store.createdDocs)
}

func TestDocumentValidation(t *testing.T) {
	f := NewDocumentForm(5, nil, newMemStore(), &fakeFiles{}, Data{Values: values("type", "PHOTO", "name", "Agreement")})
	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{"Select a valid choice. PHOTO is not one of the available choices."}, f.Errors().Get("type"))
	assert.Equal(t, []string{msgRequired}, f.Errors().Get("file"))

	empty := fileHeader(t, "file", "empty.pdf", nil)
	f = NewDocumentForm(5, nil, newMemStore(), &fakeFiles{}, Data{
		Values: values("type", "REPORT", "name", "Weekly report"),
		Files:  map[string]*multipart.FileHeader{"file": empty},
	})
	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{msgEmptyFile}, f.Errors().Get("file"))
}

func TestDocumentUpdateKeepsStoredFile(t *testing.T) {
	store, files := newMemStore(), &fakeFiles{}
	existing := &models.EnrollmentDocument{ID: 9, EnrollmentID: 5, Type: models.DocumentOther, Name: "scan", File: "enrollments/5/documents/scan.pdf"}
	f := NewDocumentForm(5, existing, store, files, Data{Values: values("type", "AGREEMENT", "name", "Signed agreement")})

	doc, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(9), doc.ID)
	assert.Equal(t, models.DocumentAgreement, doc.Type)
	assert.Equal(t, "enrollments/5/documents/scan.pdf", doc.File)
	assert.Empty(t, files.saved)
	assert.Equal(t, []*models.EnrollmentDocument{doc}, store.updatedDocs)
}

func TestDocumentTypeChoices(t *testing.T) {
	f := NewDocumentForm(5, nil, newMemStore(), &fakeFiles{}, Data{})
	choices := f.TypeChoices()
	require.Len(t, choices, len(models.DocumentTypes))
	assert.Equal(t, Choice{Value: "CV", Label: "Curriculum vitae"}, choices[0])
}

func newSearchForm(t *testing.T, store *memStore, v url.Values) *SearchForm {
	t.Helper()
	f, err := NewSearchForm(context.Background(), store, Data{Values: v})
	require.NoError(t, err)
	return f
}

func TestSearchEmptySubmissionIsUnrestricted(t *testing.T) {
	f := newSearchForm(t, newMemStore(), url.Values{})
	filter, err := f.Filter(context.Background())
	require.NoError(t, err)
	assert.True(t, filter.IsEmpty())

	f = newSearchForm(t, newMemStore(), values("title", "", "organization", "", "sector", " "))
	filter, err = f.Filter(context.Background())
	require.NoError(t, err)
	assert.True(t, filter.IsEmpty())
}

func TestSearchSectorOnly(t *testing.T) {
	f := newSearchForm(t, newMemStore(), values("sector", "logistics"))
	filter, err := f.Filter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OpportunityFilter{Sector: "logistics"}, filter)
}

func TestSearchAllCriteria(t *testing.T) {
	f := newSearchForm(t, newMemStore(), values(
		"title", "analyst",
		"organization", "11",
		"sector", "retail",
		"start_date_from", "2026-03-01",
		"start_date_to", "2026-03-31",
	))
	filter, err := f.Filter(context.Background())
	require.NoError(t, err)

	require.NotNil(t, filter.OrganizationID)
	assert.Equal(t, int64(11), *filter.OrganizationID)
	assert.Equal(t, "analyst", filter.Title)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *filter.StartFrom)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), *filter.StartTo)
}

func TestSearchRejections(t *testing.T) {
	store := newMemStore()

	f := newSearchForm(t, store, values("start_date_from", "next week"))
	_, err := f.Filter(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrFormNotValid)
	assert.Equal(t, []string{msgDate}, f.Errors().Get("start_date_from"))

	f = newSearchForm(t, store, values("organization", "12"))
	assert.False(t, f.IsValid(context.Background()))
	assert.Equal(t, []string{msgInvalidChoice}, f.Errors().Get("organization"))
}

func TestSearchOrganizationChoices(t *testing.T) {
	f := newSearchForm(t, newMemStore(), nil)
	assert.Equal(t, []Choice{
		{Value: "", Label: AllOrganizations},
		{Value: "10", Label: "Andes Logistics S.A.C."},
		{Value: "11", Label: "Pacific Retail"},
	}, f.OrganizationChoices())

	_, err := f.Filter(context.Background())
	assert.True(t, errors.Is(err, ErrUnbound))
}

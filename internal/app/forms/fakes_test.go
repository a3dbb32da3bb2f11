package forms

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/auth"
)

// memStore is an in-memory stand-in for the repositories.
type memStore struct {
	careers []*models.Career
	orgs    []*models.Organization

	updatedStudents []*models.Student
	createdOrgs     []*models.Organization
	updatedOrgs     []*models.Organization
	createdOpps     []*models.Opportunity
	updatedOpps     []*models.Opportunity
	observations    map[int64]string
	createdDocs     []*models.EnrollmentDocument
	updatedDocs     []*models.EnrollmentDocument

	writeErr error
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		careers: []*models.Career{
			{ID: 1, Name: "Software Engineering", Active: true},
			{ID: 2, Name: "Industrial Engineering", Active: true},
			{ID: 3, Name: "Mining Engineering", Active: false},
		},
		orgs: []*models.Organization{
			{ID: 10, Name: "Andes Logistics S.A.C.", Sector: "Logistics", Active: true},
			{ID: 11, Name: "Pacific Retail", Sector: "Retail", Active: true},
			{ID: 12, Name: "Closed Mining Co.", Sector: "Mining", Active: false},
		},
		observations: map[int64]string{},
		nextID:       100,
	}
}

func (s *memStore) ListActiveCareers(ctx context.Context) ([]*models.Career, error) {
	var active []*models.Career
	for _, c := range s.careers {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *memStore) ListActiveOrganizations(ctx context.Context) ([]*models.Organization, error) {
	var active []*models.Organization
	for _, o := range s.orgs {
		if o.Active {
			active = append(active, o)
		}
	}
	return active, nil
}

func (s *memStore) UpdateStudent(ctx context.Context, student *models.Student) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.updatedStudents = append(s.updatedStudents, student)
	return nil
}

func (s *memStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.nextID++
	org.ID = s.nextID
	s.createdOrgs = append(s.createdOrgs, org)
	return nil
}

func (s *memStore) UpdateOrganization(ctx context.Context, org *models.Organization) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.updatedOrgs = append(s.updatedOrgs, org)
	return nil
}

func (s *memStore) CreateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.nextID++
	opp.ID = s.nextID
	s.createdOpps = append(s.createdOpps, opp)
	return nil
}

func (s *memStore) UpdateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.updatedOpps = append(s.updatedOpps, opp)
	return nil
}

func (s *memStore) UpdateEnrollmentObservations(ctx context.Context, enrollmentID int64, observations string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.observations[enrollmentID] = observations
	return nil
}

func (s *memStore) CreateDocument(ctx context.Context, doc *models.EnrollmentDocument) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.nextID++
	doc.ID = s.nextID
	s.createdDocs = append(s.createdDocs, doc)
	return nil
}

func (s *memStore) UpdateDocument(ctx context.Context, doc *models.EnrollmentDocument) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.updatedDocs = append(s.updatedDocs, doc)
	return nil
}

// fakeIdentity keeps accounts in memory and applies the real password policy.
type fakeIdentity struct {
	users       map[string]*models.User
	students    []*models.Student
	createErr   error
	existsErr   error
	existsCalls int
	nextID      int64
}

func newFakeIdentity(usernames ...string) *fakeIdentity {
	id := &fakeIdentity{users: map[string]*models.User{}}
	for _, name := range usernames {
		id.nextID++
		id.users[strings.ToLower(name)] = &models.User{ID: id.nextID, Username: name}
	}
	return id
}

func (f *fakeIdentity) UsernameExists(ctx context.Context, username string) (bool, error) {
	f.existsCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.users[strings.ToLower(username)]
	return ok, nil
}

func (f *fakeIdentity) ValidatePassword(password string, user *models.User) error {
	return auth.ValidatePassword(password, user.Username, user.FirstName, user.LastName)
}

func (f *fakeIdentity) SetPassword(user *models.User, password string) error {
	user.Password = "hashed:" + password
	return nil
}

func (f *fakeIdentity) CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	user.ID = f.nextID
	student.ID = f.nextID
	student.UserID = user.ID
	f.users[strings.ToLower(user.Username)] = user
	f.students = append(f.students, student)
	return nil
}

// fakeFiles records stored and deleted references.
type fakeFiles struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeFiles) Save(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	ref := fmt.Sprintf("%s/file-%d%s", folder, len(f.saved)+1, path.Ext(fh.Filename))
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeFiles) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

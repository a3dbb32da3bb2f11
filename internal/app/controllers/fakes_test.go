package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/app/models/dto"
	"github.com/yigit/internhub/internal/pkg/apperrors"
	"github.com/yigit/internhub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// store keeps every record the controllers touch in memory.
type store struct {
	careers       []*models.Career
	orgs          map[int64]*models.Organization
	opps          map[int64]*models.Opportunity
	students      map[int64]*models.Student
	enrollments   map[int64]*models.Enrollment
	documents     map[int64]*models.EnrollmentDocument
	users         map[string]*models.User
	lastFilter    *models.OpportunityFilter
	lastPage      [2]int
	nextID        int64
	listCareerErr error
}

func newStore() *store {
	return &store{
		careers: []*models.Career{
			{ID: 1, Name: "Software Engineering", Active: true},
			{ID: 2, Name: "Mining Engineering", Active: false},
		},
		orgs: map[int64]*models.Organization{
			10: {ID: 10, Name: "Andes Logistics S.A.C.", Sector: "Logistics", Active: true},
			12: {ID: 12, Name: "Closed Mining Co.", Sector: "Mining", Active: false},
		},
		opps:     map[int64]*models.Opportunity{},
		students: map[int64]*models.Student{3: {ID: 3, UserID: 7, Code: "20231045", CareerID: 1, CurrentTerm: 5, Photo: "students/photos/old.png"}},
		enrollments: map[int64]*models.Enrollment{
			5: {ID: 5, StudentID: 3, OpportunityID: 20, Status: models.EnrollmentPending},
		},
		documents: map[int64]*models.EnrollmentDocument{
			8: {ID: 8, EnrollmentID: 5, Type: models.DocumentCV, Name: "CV", File: "enrollments/5/documents/cv.pdf"},
		},
		users:  map[string]*models.User{"taken": {ID: 1, Username: "taken"}},
		nextID: 100,
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) ListActiveCareers(ctx context.Context) ([]*models.Career, error) {
	if s.listCareerErr != nil {
		return nil, s.listCareerErr
	}
	var out []*models.Career
	for _, c := range s.careers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *store) ListActiveOrganizations(ctx context.Context) ([]*models.Organization, error) {
	var out []*models.Organization
	for _, id := range []int64{10, 11, 12} {
		if o, ok := s.orgs[id]; ok && o.Active {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *store) GetOrganizationByID(ctx context.Context, id int64) (*models.Organization, error) {
	if o, ok := s.orgs[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, apperrors.ErrOrganizationNotFound
}

func (s *store) CreateOrganization(ctx context.Context, org *models.Organization) error {
	org.ID = s.id()
	s.orgs[org.ID] = org
	return nil
}

func (s *store) UpdateOrganization(ctx context.Context, org *models.Organization) error {
	s.orgs[org.ID] = org
	return nil
}

func (s *store) GetOpportunityByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	if o, ok := s.opps[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, apperrors.ErrOpportunityNotFound
}

func (s *store) CreateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	opp.ID = s.id()
	s.opps[opp.ID] = opp
	return nil
}

func (s *store) UpdateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	s.opps[opp.ID] = opp
	return nil
}

func (s *store) Search(ctx context.Context, filter models.OpportunityFilter, page, size int) (*dto.PaginatedResponse, error) {
	s.lastFilter = &filter
	s.lastPage = [2]int{page, size}
	return &dto.PaginatedResponse{
		Items:      []dto.OpportunityResponse{},
		Pagination: dto.PaginationInfo{CurrentPage: page, TotalPages: 1, PageSize: size},
	}, nil
}

func (s *store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if st, ok := s.students[id]; ok {
		copied := *st
		return &copied, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *store) UpdateStudent(ctx context.Context, student *models.Student) error {
	s.students[student.ID] = student
	return nil
}

func (s *store) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	if e, ok := s.enrollments[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (s *store) UpdateEnrollmentObservations(ctx context.Context, enrollmentID int64, observations string) error {
	s.enrollments[enrollmentID].Observations = observations
	return nil
}

func (s *store) GetDocument(ctx context.Context, enrollmentID, documentID int64) (*models.EnrollmentDocument, error) {
	if d, ok := s.documents[documentID]; ok && d.EnrollmentID == enrollmentID {
		copied := *d
		return &copied, nil
	}
	return nil, apperrors.ErrDocumentNotFound
}

func (s *store) CreateDocument(ctx context.Context, doc *models.EnrollmentDocument) error {
	doc.ID = s.id()
	s.documents[doc.ID] = doc
	return nil
}

func (s *store) UpdateDocument(ctx context.Context, doc *models.EnrollmentDocument) error {
	s.documents[doc.ID] = doc
	return nil
}

// Identity

func (s *store) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := s.users[strings.ToLower(username)]
	return ok, nil
}

func (s *store) ValidatePassword(password string, user *models.User) error {
	return auth.ValidatePassword(password, user.Username, user.FirstName, user.LastName)
}

func (s *store) SetPassword(user *models.User, password string) error {
	user.Password = "hashed:" + password
	return nil
}

func (s *store) CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error {
	user.ID = s.id()
	student.ID = s.id()
	student.UserID = user.ID
	s.users[strings.ToLower(user.Username)] = user
	s.students[student.ID] = student
	return nil
}

// memFiles is a FileStorage that only records references.
type memFiles struct {
	saved   []string
	deleted []string
}

func (f *memFiles) Save(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if fh == nil {
		return "", nil
	}
	ref := fmt.Sprintf("%s/upload-%d%s", folder, len(f.saved)+1, path.Ext(fh.Filename))
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *memFiles) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *memFiles) URL(ref string) string {
	return "http://files.test/" + ref
}

type upload struct {
	field, filename string
	content         []byte
}

func multipartBody(t *testing.T, v url.Values, files ...upload) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, vals := range v {
		for _, val := range vals {
			require.NoError(t, w.WriteField(key, val))
		}
	}
	for _, u := range files {
		part, err := w.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func perform(router http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func performForm(router http.Handler, method, target string, v url.Values) *httptest.ResponseRecorder {
	return perform(router, method, target, strings.NewReader(v.Encode()), "application/x-www-form-urlencoded")
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// fieldErrors collects the messages of a 400 form response by field.
func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var resp dto.ValidationErrors
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	out := map[string][]string{}
	for _, e := range resp.Errors {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

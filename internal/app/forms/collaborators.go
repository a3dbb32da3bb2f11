package forms

import (
	"context"
	"mime/multipart"

	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/logger"
)

// Identity owns user credentials and account creation.
type Identity interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	// ValidatePassword applies the password policy; user carries the
	// personal data the password must not resemble.
	ValidatePassword(password string, user *models.User) error
	SetPassword(user *models.User, password string) error
	// CreateStudentAccount stores user and student atomically, filling in
	// their IDs and student.UserID.
	CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error
}

// FileStore keeps uploaded files and hands back a reference to them.
type FileStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, ref string) error
}

type StudentStore interface {
	UpdateStudent(ctx context.Context, student *models.Student) error
}

type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org *models.Organization) error
	UpdateOrganization(ctx context.Context, org *models.Organization) error
}

type OpportunityStore interface {
	CreateOpportunity(ctx context.Context, opp *models.Opportunity) error
	UpdateOpportunity(ctx context.Context, opp *models.Opportunity) error
}

type EnrollmentStore interface {
	UpdateEnrollmentObservations(ctx context.Context, enrollmentID int64, observations string) error
}

type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.EnrollmentDocument) error
	UpdateDocument(ctx context.Context, doc *models.EnrollmentDocument) error
}

// storeUpload saves fh under folder; a nil header stores nothing.
func storeUpload(ctx context.Context, files FileStore, fh *multipart.FileHeader, folder string) (string, error) {
	if fh == nil {
		return "", nil
	}
	return files.Save(ctx, fh, folder)
}

// discardUpload removes a file stored for a write that then failed.
func discardUpload(ctx context.Context, files FileStore, ref string) {
	if ref == "" {
		return
	}
	if err := files.Delete(ctx, ref); err != nil {
		logger.Warn().Err(err).Str("file", ref).Msg("Failed to remove orphaned upload")
	}
}

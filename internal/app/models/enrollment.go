package models

import "time"

// EnrollmentStatus is managed by the application workflow, not by forms.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "PENDING"
	EnrollmentAccepted EnrollmentStatus = "ACCEPTED"
	EnrollmentRejected EnrollmentStatus = "REJECTED"
	EnrollmentFinished EnrollmentStatus = "FINISHED"
)

// Enrollment links a student to an opportunity ('enrollments' table).
type Enrollment struct {
	ID            int64            `json:"id" db:"id"`
	StudentID     int64            `json:"studentId" db:"student_id"`
	OpportunityID int64            `json:"opportunityId" db:"opportunity_id"`
	Status        EnrollmentStatus `json:"status" db:"status"`
	Observations  string           `json:"observations" db:"observations"`
	AppliedAt     time.Time        `json:"appliedAt" db:"applied_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

// DocumentType classifies files attached to an enrollment.
type DocumentType string

const (
	DocumentCV          DocumentType = "CV"
	DocumentCoverLetter DocumentType = "COVER_LETTER"
	DocumentAgreement   DocumentType = "AGREEMENT"
	DocumentReport      DocumentType = "REPORT"
	DocumentCertificate DocumentType = "CERTIFICATE"
	DocumentOther       DocumentType = "OTHER"
)

// DocumentTypes lists the accepted document types in display order.
var DocumentTypes = []DocumentType{
	DocumentCV,
	DocumentCoverLetter,
	DocumentAgreement,
	DocumentReport,
	DocumentCertificate,
	DocumentOther,
}

// Valid reports whether t is one of DocumentTypes.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EnrollmentDocument is a file attached to an enrollment
// ('enrollment_documents' table).
type EnrollmentDocument struct {
	ID           int64        `json:"id" db:"id"`
	EnrollmentID int64        `json:"enrollmentId" db:"enrollment_id"`
	Type         DocumentType `json:"type" db:"type"`
	Name         string       `json:"name" db:"name"`
	File         string       `json:"file" db:"file"` // file storage reference
	UploadedAt   time.Time    `json:"uploadedAt" db:"uploaded_at"`
}

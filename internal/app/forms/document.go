package forms

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/yigit/internhub/internal/app/models"
)

var documentTypeLabels = map[models.DocumentType]string{
	models.DocumentCV:          "Curriculum vitae",
	models.DocumentCoverLetter: "Cover letter",
	models.DocumentAgreement:   "Internship agreement",
	models.DocumentReport:      "Report",
	models.DocumentCertificate: "Certificate",
	models.DocumentOther:       "Other",
}

// DocumentFolder is where the documents of an enrollment are stored.
func DocumentFolder(enrollmentID int64) string {
	return fmt.Sprintf("enrollments/%d/documents", enrollmentID)
}

// DocumentInput is the cleaned data of a DocumentForm.
type DocumentInput struct {
	Type string                `form:"type" validate:"required,document_type"`
	Name string                `form:"name" validate:"required,max=200"`
	File *multipart.FileHeader `form:"file" validate:"-"`
}

// DocumentForm attaches a document to an enrollment or edits an attached
// one. Any file type is accepted.
type DocumentForm struct {
	form
	enrollmentID int64
	instance     *models.EnrollmentDocument
	store        DocumentStore
	files        FileStore
	cleaned      DocumentInput
}

// NewDocumentForm binds data for a document of the given enrollment;
// instance is nil for a new document.
func NewDocumentForm(enrollmentID int64, instance *models.EnrollmentDocument, store DocumentStore, files FileStore, data Data) *DocumentForm {
	f := &DocumentForm{enrollmentID: enrollmentID, instance: instance, store: store, files: files}
	f.form = newForm(data, f.clean)
	return f
}

// TypeChoices lists the accepted document types.
func (f *DocumentForm) TypeChoices() []Choice {
	opts := make([]Choice, 0, len(models.DocumentTypes))
	for _, t := range models.DocumentTypes {
		opts = append(opts, Choice{Value: string(t), Label: documentTypeLabels[t]})
	}
	return opts
}

func (f *DocumentForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	in := DocumentInput{
		Type: d.str("type"),
		Name: d.str("name"),
		File: d.file("file"),
	}
	checkConstraints(&in, f.errors)

	hasStored := f.instance != nil && f.instance.File != ""
	if in.File == nil && !hasStored && !f.errors.Has("file") {
		f.errors.Add("file", msgRequired)
	}

	f.cleaned = in
	return nil
}

func (f *DocumentForm) Save(ctx context.Context, commit bool) (*models.EnrollmentDocument, error) {
	if err := f.ensureValid(ctx); err != nil {
		return nil, err
	}
	in := f.cleaned

	doc := &models.EnrollmentDocument{EnrollmentID: f.enrollmentID}
	if f.instance != nil {
		copied := *f.instance
		doc = &copied
	}
	doc.Type = models.DocumentType(in.Type)
	doc.Name = in.Name
	if !commit {
		return doc, nil
	}

	ref, err := storeUpload(ctx, f.files, in.File, DocumentFolder(doc.EnrollmentID))
	if err != nil {
		return nil, err
	}
	if ref != "" {
		doc.File = ref
	}

	if f.instance == nil {
		err = f.store.CreateDocument(ctx, doc)
	} else {
		err = f.store.UpdateDocument(ctx, doc)
	}
	if err != nil {
		discardUpload(ctx, f.files, ref)
		return nil, err
	}
	return doc, nil
}

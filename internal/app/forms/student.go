package forms

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/yigit/internhub/internal/app/models"
)

// StudentUpdateInput is the cleaned data of a StudentUpdateForm.
type StudentUpdateInput struct {
	CurrentTerm *int                  `form:"current_term" validate:"required,min=1,max=12"`
	Phone       string                `form:"phone" validate:"max=15"`
	Address     string                `form:"address"`
	BirthDate   *time.Time            `form:"birth_date"`
	Photo       *multipart.FileHeader `form:"photo" validate:"-"`
}

// StudentUpdateForm edits the profile fields a student may change after
// registration.
type StudentUpdateForm struct {
	form
	instance *models.Student
	store    StudentStore
	files    FileStore
	cleaned  StudentUpdateInput
}

func NewStudentUpdateForm(instance *models.Student, store StudentStore, files FileStore, data Data) *StudentUpdateForm {
	f := &StudentUpdateForm{instance: instance, store: store, files: files}
	f.form = newForm(data, f.clean)
	return f
}

func (f *StudentUpdateForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	in := StudentUpdateInput{
		CurrentTerm: d.integer("current_term"),
		Phone:       d.str("phone"),
		Address:     d.str("address"),
		BirthDate:   d.date("birth_date"),
		Photo:       d.image("photo"),
	}
	checkConstraints(&in, f.errors)
	f.cleaned = in
	return nil
}

// Save applies the cleaned data to a copy of the instance. A new photo
// replaces the stored reference; without one the current photo is kept.
// Without commit nothing is uploaded or written.
func (f *StudentUpdateForm) Save(ctx context.Context, commit bool) (*models.Student, error) {
	if err := f.ensureValid(ctx); err != nil {
		return nil, err
	}
	in := f.cleaned

	student := *f.instance
	student.CurrentTerm = *in.CurrentTerm
	student.Phone = in.Phone
	student.Address = in.Address
	student.BirthDate = in.BirthDate
	if !commit {
		return &student, nil
	}

	photo, err := storeUpload(ctx, f.files, in.Photo, StudentPhotoFolder)
	if err != nil {
		return nil, err
	}
	if photo != "" {
		student.Photo = photo
	}

	if err := f.store.UpdateStudent(ctx, &student); err != nil {
		discardUpload(ctx, f.files, photo)
		return nil, err
	}
	return &student, nil
}

package forms

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/apperrors"
)

const (
	msgPasswordMismatch = "The two password fields didn't match."
	msgUsernameTaken    = "A user with that username already exists."
	msgStudentCodeTaken = "Student with this Student code already exists."
)

// StudentPhotoFolder is where registration and profile photos are stored.
const StudentPhotoFolder = "students/photos"

// RegistrationInput is the cleaned data of a RegistrationForm.
type RegistrationInput struct {
	Username    string                `form:"username" validate:"required,max=150,username"`
	FirstName   string                `form:"first_name" validate:"required,max=30"`
	LastName    string                `form:"last_name" validate:"required,max=30"`
	Email       string                `form:"email" validate:"required,max=254,email"`
	Password1   string                `form:"password1" validate:"required"`
	Password2   string                `form:"password2" validate:"required"`
	StudentCode string                `form:"student_code" validate:"required,max=20"`
	CareerID    *int64                `form:"career" validate:"required"`
	CurrentTerm *int                  `form:"current_term" validate:"required,min=1,max=12"`
	Phone       string                `form:"phone" validate:"max=15"`
	Address     string                `form:"address"`
	BirthDate   *time.Time            `form:"birth_date"`
	Photo       *multipart.FileHeader `form:"photo" validate:"-"`
}

// RegistrationForm signs up a student: it creates the User account and the
// Student profile that belongs to it.
type RegistrationForm struct {
	form
	careers  *ModelChoices[*models.Career]
	identity Identity
	files    FileStore

	cleaned RegistrationInput
	student *models.Student
}

// NewRegistrationForm loads the active careers and binds data.
func NewRegistrationForm(ctx context.Context, careers CareerSource, identity Identity, files FileStore, data Data) (*RegistrationForm, error) {
	choices, err := activeCareers(ctx, careers)
	if err != nil {
		return nil, err
	}
	f := &RegistrationForm{careers: choices, identity: identity, files: files}
	f.form = newForm(data, f.clean)
	return f, nil
}

// CareerChoices lists the careers a student may register for.
func (f *RegistrationForm) CareerChoices() []Choice {
	return f.careers.Options()
}

func (f *RegistrationForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	in := RegistrationInput{
		Username:    d.str("username"),
		FirstName:   d.str("first_name"),
		LastName:    d.str("last_name"),
		Email:       d.str("email"),
		Password1:   d.raw("password1"),
		Password2:   d.raw("password2"),
		StudentCode: d.str("student_code"),
		CareerID:    d.choiceKey("career"),
		CurrentTerm: d.integer("current_term"),
		Phone:       d.str("phone"),
		Address:     d.str("address"),
		BirthDate:   d.date("birth_date"),
		Photo:       d.image("photo"),
	}
	checkConstraints(&in, f.errors)

	if in.CareerID != nil && !f.errors.Has("career") {
		if _, ok := f.careers.Lookup(*in.CareerID); !ok {
			f.errors.Add("career", msgInvalidChoice)
		}
	}

	if in.Username != "" && !f.errors.Has("username") {
		exists, err := f.identity.UsernameExists(ctx, in.Username)
		if err != nil {
			return err
		}
		if exists {
			f.errors.Add("username", msgUsernameTaken)
		}
	}

	if in.Password1 != "" && in.Password2 != "" {
		if in.Password1 != in.Password2 {
			f.errors.Add(NonFieldErrors, msgPasswordMismatch)
		} else {
			user := &models.User{Username: in.Username, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
			if err := f.identity.ValidatePassword(in.Password2, user); err != nil {
				for _, msg := range errorMessages(err) {
					f.errors.Add("password2", msg)
				}
			}
		}
	}

	f.cleaned = in
	return nil
}

// Student returns the profile created by the last committed Save, or nil.
func (f *RegistrationForm) Student() *models.Student {
	return f.student
}

// Save builds the account from the cleaned data. With commit the photo is
// uploaded and User and Student are stored in one transaction; a failed
// transaction removes the uploaded photo again. Without commit the User is
// returned unsaved (password already hashed) and no Student is created.
func (f *RegistrationForm) Save(ctx context.Context, commit bool) (*models.User, error) {
	if err := f.ensureValid(ctx); err != nil {
		return nil, err
	}
	in := f.cleaned
	f.student = nil

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := f.identity.SetPassword(user, in.Password1); err != nil {
		return nil, err
	}
	if !commit {
		return user, nil
	}

	student := &models.Student{
		Code:        in.StudentCode,
		CareerID:    *in.CareerID,
		CurrentTerm: *in.CurrentTerm,
		Phone:       in.Phone,
		Address:     in.Address,
		BirthDate:   in.BirthDate,
	}
	photo, err := storeUpload(ctx, f.files, in.Photo, StudentPhotoFolder)
	if err != nil {
		return nil, err
	}
	student.Photo = photo

	if err := f.identity.CreateStudentAccount(ctx, user, student); err != nil {
		discardUpload(ctx, f.files, photo)
		switch {
		case errors.Is(err, apperrors.ErrUsernameTaken):
			return nil, f.reject("username", msgUsernameTaken)
		case errors.Is(err, apperrors.ErrStudentCodeTaken):
			return nil, f.reject("student_code", msgStudentCodeTaken)
		case errors.Is(err, apperrors.ErrCareerNotFound):
			return nil, f.reject("career", msgInvalidChoice)
		}
		return nil, err
	}

	student.User = user
	f.student = student
	return user, nil
}

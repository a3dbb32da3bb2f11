package forms

import (
	"context"

	"github.com/yigit/internhub/internal/app/models"
)

type EnrollmentInput struct {
	Observations string `form:"observations"`
}

// EnrollmentForm edits the observations of an enrollment. Status and
// timestamps are left to the enrollment workflow.
type EnrollmentForm struct {
	form
	instance *models.Enrollment
	store    EnrollmentStore
	cleaned  EnrollmentInput
}

func NewEnrollmentForm(instance *models.Enrollment, store EnrollmentStore, data Data) *EnrollmentForm {
	f := &EnrollmentForm{instance: instance, store: store}
	f.form = newForm(data, f.clean)
	return f
}

func (f *EnrollmentForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	f.cleaned = EnrollmentInput{Observations: d.str("observations")}
	return nil
}

func (f *EnrollmentForm) Save(ctx context.Context, commit bool) (*models.Enrollment, error) {
	if err := f.ensureValid(ctx); err != nil {
		return nil, err
	}
	enrollment := *f.instance
	enrollment.Observations = f.cleaned.Observations
	if !commit {
		return &enrollment, nil
	}
	if err := f.store.UpdateEnrollmentObservations(ctx, enrollment.ID, enrollment.Observations); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

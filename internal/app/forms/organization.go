package forms

import (
	"context"
	"mime/multipart"

	"github.com/yigit/internhub/internal/app/models"
)

// OrganizationLogoFolder is where organization logos are stored.
const OrganizationLogoFolder = "organizations/logos"

// OrganizationInput is the cleaned data of an OrganizationForm.
type OrganizationInput struct {
	Name          string                `form:"name" validate:"required,max=200"`
	TaxID         string                `form:"tax_id" validate:"required,max=11"`
	Address       string                `form:"address" validate:"required"`
	Phone         string                `form:"phone" validate:"required,max=15"`
	Email         string                `form:"email" validate:"required,max=254,email"`
	ContactPerson string                `form:"contact_person" validate:"required,max=100"`
	Sector        string                `form:"sector" validate:"required,max=100"`
	Description   string                `form:"description" validate:"required"`
	Logo          *multipart.FileHeader `form:"logo" validate:"-"`
}

// OrganizationForm creates an organization, or edits one when constructed
// with an instance.
type OrganizationForm struct {
	form
	instance *models.Organization
	store    OrganizationStore
	files    FileStore
	cleaned  OrganizationInput
}

// NewOrganizationForm binds data; instance is nil for a new organization.
func NewOrganizationForm(instance *models.Organization, store OrganizationStore, files FileStore, data Data) *OrganizationForm {
	f := &OrganizationForm{instance: instance, store: store, files: files}
	f.form = newForm(data, f.clean)
	return f
}

func (f *OrganizationForm) clean(ctx context.Context) error {
	d := newDecoder(f.data, f.errors)
	in := OrganizationInput{
		Name:          d.str("name"),
		TaxID:         d.str("tax_id"),
		Address:       d.str("address"),
		Phone:         d.str("phone"),
		Email:         d.str("email"),
		ContactPerson: d.str("contact_person"),
		Sector:        d.str("sector"),
		Description:   d.str("description"),
		Logo:          d.image("logo"),
	}
	checkConstraints(&in, f.errors)
	f.cleaned = in
	return nil
}

func (f *OrganizationForm) Save(ctx context.Context, commit bool) (*models.Organization, error) {
	if err := f.ensureValid(ctx); err != nil {
		return nil, err
	}
	in := f.cleaned

	org := &models.Organization{Active: true}
	if f.instance != nil {
		copied := *f.instance
		org = &copied
	}
	org.Name = in.Name
	org.TaxID = in.TaxID
	org.Address = in.Address
	org.Phone = in.Phone
	org.Email = in.Email
	org.ContactPerson = in.ContactPerson
	org.Sector = in.Sector
	org.Description = in.Description
	if !commit {
		return org, nil
	}

	logo, err := storeUpload(ctx, f.files, in.Logo, OrganizationLogoFolder)
	if err != nil {
		return nil, err
	}
	if logo != "" {
		org.Logo = logo
	}

	if f.instance == nil {
		err = f.store.CreateOrganization(ctx, org)
	} else {
		err = f.store.UpdateOrganization(ctx, org)
	}
	if err != nil {
		discardUpload(ctx, f.files, logo)
		return nil, err
	}
	return org, nil
}

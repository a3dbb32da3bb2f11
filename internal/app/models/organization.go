package models

import "time"

// Organization is a company offering internships ('organizations' table).
type Organization struct {
	ID            int64     `json:"id" db:"id" example:"3"`
	Name          string    `json:"name" db:"name" example:"Andes Logistics S.A.C."`
	TaxID         string    `json:"taxId" db:"tax_id" example:"20512345678"`
	Address       string    `json:"address" db:"address"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email" db:"email"`
	ContactPerson string    `json:"contactPerson" db:"contact_person"`
	Sector        string    `json:"sector" db:"sector" example:"Logistics"`
	Description   string    `json:"description" db:"description"`
	Logo          string    `json:"logo,omitempty" db:"logo"` // file storage reference
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

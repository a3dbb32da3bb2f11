package models

// Career is an academic program. Only active careers are offered during
// student registration.
type Career struct {
	ID     int64  `json:"id" db:"id" example:"2"`
	Name   string `json:"name" db:"name" example:"Software Engineering"`
	Active bool   `json:"active" db:"active" example:"true"`
}

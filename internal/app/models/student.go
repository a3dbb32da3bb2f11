package models

import "time"

// Term bounds for Student.CurrentTerm.
const (
	MinTerm = 1
	MaxTerm = 12
)

// Student is the profile owned by exactly one User ('students' table).
type Student struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	UserID      int64      `json:"userId" db:"user_id" example:"5"`
	Code        string     `json:"code" db:"code" example:"20231045"`
	CareerID    int64      `json:"careerId" db:"career_id" example:"2"`
	CurrentTerm int        `json:"currentTerm" db:"current_term" example:"6"`
	Phone       string     `json:"phone" db:"phone" example:"987654321"`
	Address     string     `json:"address" db:"address"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Photo       string     `json:"photo,omitempty" db:"photo"` // file storage reference
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User   *User   `json:"user,omitempty"`
	Career *Career `json:"career,omitempty"`
}

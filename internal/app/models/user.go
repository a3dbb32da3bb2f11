package models

import (
	"time"
)

// User is the login identity of a student, stored in the 'users' table.
type User struct {
	ID         int64      `json:"id" db:"id" example:"1"`
	Username   string     `json:"username" db:"username" example:"mgarcia"`
	Email      string     `json:"email" db:"email" example:"mgarcia@uni.edu.pe"`
	Password   string     `json:"-" db:"password"` // bcrypt hash
	FirstName  string     `json:"firstName" db:"first_name" example:"María"`
	LastName   string     `json:"lastName" db:"last_name" example:"García"`
	IsActive   bool       `json:"isActive" db:"is_active" example:"true"`
	DateJoined time.Time  `json:"dateJoined" db:"date_joined"`
	LastLogin  *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

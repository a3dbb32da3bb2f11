package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// CareerSeeder inserts careers that do not exist yet.
type CareerSeeder interface {
	EnsureCareer(ctx context.Context, name string, active bool) (bool, error)
}

// DefaultCareer is a career created on first start.
type DefaultCareer struct {
	Name   string
	Active bool
}

// DefaultCareers are offered by the registration form out of the box.
// Inactive careers stay in the catalogue for existing students but are not
// selectable on registration.
var DefaultCareers = []DefaultCareer{
	{Name: "Software Engineering", Active: true},
	{Name: "Systems Engineering", Active: true},
	{Name: "Industrial Engineering", Active: true},
	{Name: "Business Administration", Active: true},
	{Name: "Accounting", Active: true},
	{Name: "Mining Engineering", Active: false},
}

// CreateDefaultData creates the default careers if they don't exist.
// Failures are collected so one bad row does not stop the rest.
func CreateDefaultData(ctx context.Context, careers CareerSeeder, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Careers)...")

	var finalErr error
	created := 0
	for _, c := range DefaultCareers {
		inserted, err := careers.EnsureCareer(ctx, c.Name, c.Active)
		if err != nil {
			lgr.Error().Err(err).Str("career", c.Name).Msg("Error creating default career")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if inserted {
			created++
		}
	}

	lgr.Info().Int("created", created).Int("total", len(DefaultCareers)).Msg("Default careers ensured")
	return finalErr
}

package forms

import (
	"context"
	"strconv"

	"github.com/yigit/internhub/internal/app/models"
)

// Choice is one selectable option as rendered to the client.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ModelChoices is the set of records a choice field accepts. It is built
// from a query made when the form is constructed and never shared between
// forms.
type ModelChoices[T any] struct {
	items      []T
	byID       map[int64]T
	label      func(T) string
	key        func(T) int64
	emptyLabel string
}

func newModelChoices[T any](items []T, key func(T) int64, label func(T) string) *ModelChoices[T] {
	byID := make(map[int64]T, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	return &ModelChoices[T]{items: items, byID: byID, key: key, label: label}
}

// withEmpty adds a leading blank option (value "") rendered as label.
func (c *ModelChoices[T]) withEmpty(label string) *ModelChoices[T] {
	c.emptyLabel = label
	return c
}

// Lookup returns the record with the given id if it is selectable.
func (c *ModelChoices[T]) Lookup(id int64) (T, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Options returns the options in query order, preceded by the blank option
// when the field has one.
func (c *ModelChoices[T]) Options() []Choice {
	opts := make([]Choice, 0, len(c.items)+1)
	if c.emptyLabel != "" {
		opts = append(opts, Choice{Value: "", Label: c.emptyLabel})
	}
	for _, item := range c.items {
		opts = append(opts, Choice{Value: strconv.FormatInt(c.key(item), 10), Label: c.label(item)})
	}
	return opts
}

// CareerSource lists the careers students may register for.
type CareerSource interface {
	ListActiveCareers(ctx context.Context) ([]*models.Career, error)
}

// OrganizationSource lists the organizations opportunities may reference.
type OrganizationSource interface {
	ListActiveOrganizations(ctx context.Context) ([]*models.Organization, error)
}

func activeCareers(ctx context.Context, src CareerSource) (*ModelChoices[*models.Career], error) {
	careers, err := src.ListActiveCareers(ctx)
	if err != nil {
		return nil, err
	}
	return newModelChoices(careers,
		func(c *models.Career) int64 { return c.ID },
		func(c *models.Career) string { return c.Name },
	), nil
}

func activeOrganizations(ctx context.Context, src OrganizationSource) (*ModelChoices[*models.Organization], error) {
	orgs, err := src.ListActiveOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	return newModelChoices(orgs,
		func(o *models.Organization) int64 { return o.ID },
		func(o *models.Organization) string { return o.Name },
	), nil
}

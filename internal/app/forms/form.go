// Package forms binds submitted web form data to the internship domain:
// student registration and profile edits, organization and opportunity
// records, enrollment notes and documents, and the opportunity search.
//
// Every form follows the same life cycle. It is constructed with the
// submitted Data (and, for edit flows, the existing record), validated once
// through Validate/IsValid, and, when bound to a model, persisted with Save.
// Choice fields that reference careers or organizations are loaded when the
// form is constructed, so they always reflect the current active flags.
package forms

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/yigit/internhub/internal/pkg/apperrors"
)

// NonFieldErrors is the Errors key for messages that concern the form as a
// whole rather than one field.
const NonFieldErrors = "__all__"

// Data is one submission: text values plus uploaded files keyed by field name.
// A Data with nil Values is unbound (nothing was submitted).
type Data struct {
	Values url.Values
	Files  map[string]*multipart.FileHeader
}

// DataFromRequest extracts form data from GET query strings, urlencoded
// bodies and multipart bodies. Only the first file per field is kept.
func DataFromRequest(r *http.Request, maxMemory int64) (Data, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return Data{Values: r.URL.Query()}, nil
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return Data{}, fmt.Errorf("%w: malformed multipart body: %w", apperrors.ErrBadRequest, err)
		}
		files := make(map[string]*multipart.FileHeader, len(r.MultipartForm.File))
		for name, headers := range r.MultipartForm.File {
			if len(headers) > 0 {
				files[name] = headers[0]
			}
		}
		return Data{Values: r.PostForm, Files: files}, nil
	}

	if err := r.ParseForm(); err != nil {
		return Data{}, fmt.Errorf("%w: malformed form body: %w", apperrors.ErrBadRequest, err)
	}
	return Data{Values: r.PostForm}, nil
}

// Errors maps field names to validation messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Get returns the messages recorded for field.
func (e Errors) Get(field string) []string {
	return e[field]
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// NonField returns the form-level messages.
func (e Errors) NonField() []string {
	return e[NonFieldErrors]
}

// Fields lists the fields with errors in a stable order, non-field errors first.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field, msgs := range e {
		if len(msgs) > 0 && field != NonFieldErrors {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	if e.Has(NonFieldErrors) {
		fields = append([]string{NonFieldErrors}, fields...)
	}
	return fields
}

// ValidationError is returned when submitted data does not validate.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, field := range e.Errors.Fields() {
		parts = append(parts, field+": "+strings.Join(e.Errors[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// ErrUnbound is returned by Validate and Save on a form without data.
var ErrUnbound = fmt.Errorf("%w: no data was submitted", apperrors.ErrFormNotValid)

// form carries the state shared by every form: submitted data, collected
// errors and the cached outcome of validation.
type form struct {
	data    Data
	errors  Errors
	clean   func(ctx context.Context) error
	checked bool
	result  error
}

func newForm(data Data, clean func(ctx context.Context) error) form {
	return form{data: data, errors: Errors{}, clean: clean}
}

// IsBound reports whether data was submitted.
func (f *form) IsBound() bool {
	return f.data.Values != nil
}

// Errors returns the messages collected by validation (and by Save when the
// store rejects a value, e.g. a username taken concurrently).
func (f *form) Errors() Errors {
	return f.errors
}

// Validate cleans the submitted data once and caches the outcome. It
// returns nil when the data is valid, a *ValidationError when it is not,
// and any other error when a collaborator failed while validating.
func (f *form) Validate(ctx context.Context) error {
	if !f.IsBound() {
		return ErrUnbound
	}
	if f.checked {
		return f.result
	}

	if err := f.clean(ctx); err != nil {
		// collaborator failure: reset so a retry starts from scratch
		f.errors = Errors{}
		return err
	}

	f.checked = true
	if len(f.errors) > 0 {
		f.result = &ValidationError{Errors: f.errors}
	}
	return f.result
}

// IsValid reports whether the submitted data validates.
func (f *form) IsValid(ctx context.Context) bool {
	return f.Validate(ctx) == nil
}

// ensureValid is the Save precondition.
func (f *form) ensureValid(ctx context.Context) error {
	err := f.Validate(ctx)
	switch {
	case err == nil:
		return nil
	case err == ErrUnbound:
		return err
	case isValidationError(err):
		return fmt.Errorf("%w: %w", apperrors.ErrFormNotValid, err)
	default:
		return err
	}
}

// reject records an error discovered while saving and turns the cached
// validation outcome into a failure.
func (f *form) reject(field, message string) error {
	f.errors.Add(field, message)
	verr := &ValidationError{Errors: f.errors}
	f.result = verr
	return fmt.Errorf("%w: %w", apperrors.ErrFormNotValid, verr)
}

func isValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

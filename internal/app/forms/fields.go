package forms

import (
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/validation"
)

// Messages shown to the user.
const (
	msgRequired      = "This field is required."
	msgInteger       = "Enter a whole number."
	msgDate          = "Enter a valid date."
	msgDateTime      = "Enter a valid date/time."
	msgEmail         = "Enter a valid email address."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgEmptyFile     = "The submitted file is empty."
	msgUsername      = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgInvalid       = "Enter a valid value."
)

var (
	dateLayouts = []string{"2006-01-02", "01/02/2006", "01/02/06"}

	dateTimeLayouts = []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		time.RFC3339,
		"2006-01-02",
	}

	// location naive dates and times are read in
	location = time.UTC

	imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff"}
)

var validate = newValidator()

// SetTimeZone sets the location submitted dates and times without an
// explicit offset are interpreted in. The default is UTC.
func SetTimeZone(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	location = loc
}

func newValidator() *validator.Validate {
	v := validation.New("form")
	validation.MustRegisterString(v, "document_type", func(s string) bool {
		return models.DocumentType(s).Valid()
	})
	return v
}

// checkConstraints runs the validate tags of a cleaned struct and records
// one message per failing field. Fields that already failed to decode are
// skipped so the user sees the more specific message.
func checkConstraints(cleaned interface{}, errs Errors) {
	err := validate.Struct(cleaned)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add(NonFieldErrors, msgInvalid)
		return
	}
	for _, fe := range fieldErrs {
		if errs.Has(fe.Field()) {
			continue
		}
		errs.Add(fe.Field(), constraintMessage(fe))
	}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at least %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "email":
		return msgEmail
	case validation.TagUsername:
		return msgUsername
	case "document_type":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	default:
		return msgInvalid
	}
}

func runeLen(v interface{}) int {
	s, _ := v.(string)
	return utf8.RuneCountInString(s)
}

// decoder converts raw submitted strings into typed values, recording type
// errors as it goes. Missing or blank values decode to the zero value (or
// nil) and are left for the required checks.
type decoder struct {
	data Data
	errs Errors
}

func newDecoder(data Data, errs Errors) *decoder {
	return &decoder{data: data, errs: errs}
}

// raw returns the value as submitted (passwords are not trimmed).
func (d *decoder) raw(name string) string {
	return d.data.Values.Get(name)
}

// str returns the value with surrounding whitespace removed.
func (d *decoder) str(name string) string {
	return strings.TrimSpace(d.data.Values.Get(name))
}

func (d *decoder) integer(name string) *int {
	s := d.str(name)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		d.errs.Add(name, msgInteger)
		return nil
	}
	return &n
}

// choiceKey decodes the primary key submitted for a model choice field.
func (d *decoder) choiceKey(name string) *int64 {
	s := d.str(name)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		d.errs.Add(name, msgInvalidChoice)
		return nil
	}
	return &n
}

func (d *decoder) date(name string) *time.Time {
	return d.parseTime(name, dateLayouts, msgDate)
}

func (d *decoder) dateTime(name string) *time.Time {
	return d.parseTime(name, dateTimeLayouts, msgDateTime)
}

func (d *decoder) parseTime(name string, layouts []string, message string) *time.Time {
	s := d.str(name)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, location); err == nil {
			return &t
		}
	}
	d.errs.Add(name, message)
	return nil
}

// file returns the uploaded file for name, rejecting empty uploads.
func (d *decoder) file(name string) *multipart.FileHeader {
	fh := d.data.Files[name]
	if fh == nil {
		return nil
	}
	if fh.Size == 0 {
		d.errs.Add(name, msgEmptyFile)
		return nil
	}
	return fh
}

// image is file plus content sniffing: only raster image formats pass.
func (d *decoder) image(name string) *multipart.FileHeader {
	fh := d.file(name)
	if fh == nil {
		return nil
	}
	if !isImage(fh) {
		d.errs.Add(name, msgInvalidImage)
		return nil
	}
	return fh
}

func isImage(fh *multipart.FileHeader) bool {
	f, err := fh.Open()
	if err != nil {
		return false
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return false
	}
	return mimetypeIn(mime, imageTypes)
}

func mimetypeIn(mime *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if mime.Is(t) {
			return true
		}
	}
	return false
}

// errorMessages flattens a (possibly joined) error into user messages.
func errorMessages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, errorMessages(e)...)
		}
		return msgs
	}
	return []string{err.Error()}
}

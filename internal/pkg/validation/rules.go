package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Usernames: letters, digits and @/./+/-/_
	UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// TagUsername checks UsernamePattern.
const TagUsername = "username"

// New returns a validator that reports fields by the name in their tagName
// struct tag and knows the custom tags of this package. Fields tagged "-"
// keep their Go name.
func New(tagName string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	MustRegisterString(v, TagUsername, UsernamePattern.MatchString)
	return v
}

// MustRegisterString registers a tag whose rule only looks at the string
// value of the field. It panics on an empty tag.
func MustRegisterString(v *validator.Validate, tag string, rule func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return rule(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

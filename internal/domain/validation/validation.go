// Package validation checks request structs against their `validate` tags and
// reports the first failing field by its JSON name.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const KindMissingField = "missing-required-field"

type Error struct {
	Field string
	Kind  string
}

func (e *Error) Error() string {
	return e.Field + " is required"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v. Fields are visited in declaration order, so the returned
// error names the first offender.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &Error{Field: fieldErrs[0].Field(), Kind: KindMissingField}
	}
	return err
}

// TrimAll trims every entry of in and drops the blank ones. A nil slice stays nil.
func TrimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Package validate wraps go-playground/validator with the survey's custom
// rules and turns its errors into field/message pairs keyed by JSON name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule, keyed by the field's JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is every failed rule of one validation, in struct field order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Validator is safe for concurrent use; build one and share it.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerRules(v)

	return &Validator{validate: v}
}

// Struct validates s. A rule failure is returned as Errors; anything else
// (a non-struct argument) is returned as is.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return "is required"
	case "email_address":
		return "must be a valid email address"
	case "national_id":
		return "must have 11 digits and not be a repeated digit"
	case "strong_password":
		return fmt.Sprintf("must be at least %d characters with upper case, lower case and a digit", MinPasswordLength)
	case "profile":
		return "must be one of: " + strings.Join(profileNames(), ", ")
	case "experience_level":
		return "must be one of: " + strings.Join(levelNames(), ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}

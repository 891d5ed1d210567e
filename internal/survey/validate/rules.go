package validate

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func registerRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("validate: register " + tag + ": " + err.Error())
		}
	}

	mustRegister("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fieldString(fl)) != ""
	})
	mustRegister("email_address", func(fl validator.FieldLevel) bool {
		return Email(fieldString(fl))
	})
	mustRegister("national_id", func(fl validator.FieldLevel) bool {
		return NationalID(NormalizeNationalID(fieldString(fl)))
	})
	mustRegister("strong_password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fieldString(fl))
	})
	mustRegister("profile", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseProfile(fieldString(fl))
		return err == nil
	})
	mustRegister("experience_level", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseExperienceLevel(fieldString(fl))
		return err == nil
	})
}

// fieldString reads the field as a string, following pointers. Non-string
// fields read as "".
func fieldString(fl validator.FieldLevel) string {
	f := fl.Field()
	for f.Kind() == reflect.Pointer {
		if f.IsNil() {
			return ""
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}

// Email reports whether s looks like local@domain.tld with no whitespace.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeNationalID strips everything but ASCII digits, so "123.456.789-09"
// and "12345678909" are the same id.
func NormalizeNationalID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NationalID reports whether digits is an 11 digit id that is not one digit
// repeated.
func NationalID(digits string) bool {
	if len(digits) != 11 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return strings.Count(digits, digits[:1]) != len(digits)
}

// StrongPassword requires MinPasswordLength characters including an ASCII
// upper case letter, a lower case letter and a digit.
func StrongPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

func profileNames() []string { return domain.ProfileNames() }

func levelNames() []string { return domain.ExperienceLevelNames() }

// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("email_list", validateEmailList)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

// ValidateSlice runs struct validation over every element of a decoded list.
func ValidateSlice[T any](items []T) error {
	return validate.Var(items, "dive")
}

// validateEmailList accepts a comma separated list of addresses; empty means "no recipients".
func validateEmailList(fl validator.FieldLevel) bool {
	_, ok := ParseEmailList(fl.Field().String())
	return ok
}

// ParseEmailList splits a comma separated recipient list, trimming blanks.
func ParseEmailList(raw string) ([]string, bool) {
	emails := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if validate.Var(part, "email") != nil {
			return nil, false
		}
		emails = append(emails, part)
	}
	return emails, true
}

func GetValidationErrors(err error) []FieldError {
	var fieldErrors []FieldError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   fieldPath(e),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return fieldErrors
}

// fieldPath drops the top-level struct name so nested paths read like "[2].user.email".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexAny(ns, ".["); i >= 0 && ns[i] == '.' {
		ns = ns[i+1:]
	} else if i >= 0 {
		ns = ns[i:]
	}
	if ns == "" {
		ns = e.Field()
	}
	return strings.ToLower(ns)
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "email_list":
		return "Recipients must be a comma separated list of valid email addresses"
	default:
		return e.Field() + " is invalid"
	}
}

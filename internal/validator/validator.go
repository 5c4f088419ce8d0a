// Package validator checks decoded request payloads with
// go-playground/validator and reports failures as a field → message map.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	domainerrors "github.com/aoideee/people-books-api/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *playground.Validate
}

// New creates a validator that names fields after their JSON tags.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	return &Validator{v: v}
}

// Validate checks s and returns a CodeValidation domain error whose Details
// is a map[string]string of field names to messages.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	// The first failure for a field is the one that is reported.
	details := make(map[string]string, len(fieldErrs))
	for _, e := range fieldErrs {
		if _, exists := details[e.Field()]; !exists {
			details[e.Field()] = friendlyMessage(e)
		}
	}
	return domainerrors.ValidationWithDetails(domainerrors.ErrValidation.Message, details)
}

// Fields extracts the field → message map from a validation error.
func Fields(err error) (map[string]string, bool) {
	var domainErr *domainerrors.Error
	if !domainerrors.Is(err, domainerrors.ErrValidation) || !domainerrors.As(err, &domainErr) {
		return nil, false
	}
	fields, ok := domainErr.Details.(map[string]string)
	return fields, ok
}

func friendlyMessage(e playground.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must be provided"
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not be more than %s bytes long", e.Param())
		}
		return "must be less than or equal to " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s bytes long", e.Param())
		}
		return "must be greater than or equal to " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

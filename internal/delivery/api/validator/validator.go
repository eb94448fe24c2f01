// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their json name.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: v}
}

// Validate returns a VALIDATION_ERROR listing every failed field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := errors.Find[validator.ValidationErrors](err)
	if !ok {
		return errors.WithStack(err)
	}

	failures := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		failures = append(failures, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(failures, "; "))
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}

	return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
}

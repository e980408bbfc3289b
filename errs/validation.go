package errs

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FromValidation converts the first failed rule of a validator error into an ApiErr.
func FromValidation(err error) *ApiErr {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return NewMalformedPayloadError("request", err)
	}

	fe := validationErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return NewMissingRequiredFieldError(field)
	case "email":
		return NewInvalidFieldError(field, "must be a valid email address")
	case "url":
		return NewInvalidFieldError(field, "must be an absolute URL")
	case "min":
		if fe.Kind() == reflect.String {
			return NewInvalidFieldError(field, fmt.Sprintf("must be at least %s characters", fe.Param()))
		}
		return NewInvalidFieldError(field, fmt.Sprintf("must be greater than or equal to %s", fe.Param()))
	case "max":
		return NewInvalidFieldError(field, fmt.Sprintf("must be less than or equal to %s", fe.Param()))
	default:
		return NewInvalidFieldError(field, fmt.Sprintf("failed %q rule", fe.Tag()))
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/developer-portfolio-backend/errs"
	"github.com/rpupo63/developer-portfolio-backend/models"
)

// validationValuer is implemented by models.Optional and models.Nullable.
type validationValuer interface {
	ValidationValue() any
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so error fields match the payload keys.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if valuer, ok := field.Interface().(validationValuer); ok {
			return valuer.ValidationValue()
		}
		return nil
	},
		models.Optional[string]{},
		models.Optional[int]{},
		models.Optional[bool]{},
		models.Nullable[string]{},
	)
	return v
}

// decodeInput parses payload into T and validates it. An empty payload
// decodes to the zero value. When pathID is set it replaces any id found in
// the payload.
func decodeInput[T any](payload []byte, pathID *int64, setID func(*T, int64)) (T, error) {
	var in T

	if len(bytes.TrimSpace(payload)) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			if errors.Is(err, models.ErrNullNotAllowed) {
				return in, errs.NewInvalidFieldError(nullField(payload, reflect.TypeOf(in)), "null is not allowed")
			}
			return in, decodeError(err)
		}
	}

	if pathID != nil && setID != nil {
		setID(&in, *pathID)
	}

	if err := validate.Struct(in); err != nil {
		return in, errs.FromValidation(err)
	}
	return in, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "payload"
		}
		return errs.NewInvalidFieldError(field, fmt.Sprintf("must be %s", typeErr.Type.String()))
	default:
		return errs.NewInvalidJSONError(err)
	}
}

// nullField names the first key of payload that is null but whose field in t
// refuses null. encoding/json does not say which key an Unmarshaler failed on.
func nullField(payload []byte, t reflect.Type) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil || t.Kind() != reflect.Struct {
		return "payload"
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = field.Name
		}
		value, ok := raw[name]
		if !ok || !bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}
		target := reflect.New(field.Type).Interface()
		if err := json.Unmarshal(value, target); errors.Is(err, models.ErrNullNotAllowed) {
			return name
		}
	}
	return "payload"
}

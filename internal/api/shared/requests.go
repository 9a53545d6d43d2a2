package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates v with its `validate` struct tags.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}

// ValidationMessage returns the message for the first failed field of err.
// messages is keyed by "<json field>.<tag>"; a key of "<json field>" matches
// any tag. fallback is returned when nothing matches.
func ValidationMessage(err error, messages map[string]string, fallback string) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fallback
	}
	for _, fe := range fieldErrs {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
		if msg, ok := messages[fe.Field()]; ok {
			return msg
		}
	}
	return fallback
}

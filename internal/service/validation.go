package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/brookfield-academy/site-server-go/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodePayload decodes a closed-shape payload into dst and validates it.
// Unknown fields are rejected.
func decodePayload(data json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		data = json.RawMessage("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.ValidationError("Invalid request data")
	}

	return validateStruct(dst)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.ValidationError("Invalid request data")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.MissingRequired(fe.Field())
	case "email":
		return apperrors.InvalidInput(fe.Field(), "must be a valid email address")
	case "url":
		return apperrors.InvalidInput(fe.Field(), "must be a valid URL")
	case "max":
		return apperrors.InvalidInput(fe.Field(), "must be at most "+fe.Param()+" characters")
	case "min":
		return apperrors.InvalidInput(fe.Field(), "must be at least "+fe.Param())
	default:
		return apperrors.InvalidInput(fe.Field(), "failed "+fe.Tag()+" check")
	}
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}

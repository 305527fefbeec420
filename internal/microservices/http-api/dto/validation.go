package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired      = "This field is required"
	MsgBlank         = "This field may not be blank."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidSlug   = `Enter a valid "slug" consisting of letters, numbers, underscores or hyphens.`
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// ReservedUsername is the path segment of the current-user profile.
const ReservedUsername = "me"

// RegisterValidators installs the custom tags used by the request DTOs and
// makes field errors report json names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	validators := map[string]validator.Func{
		"slug": func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		},
		"username": func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s != ReservedUsername && usernamePattern.MatchString(s)
		},
		"notfuture": func(fl validator.FieldLevel) bool {
			return fl.Field().Int() <= int64(time.Now().Year())
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}

// ValidationErrors turns a binding error into the field -> message body.
func ValidationErrors(err error) map[string]string {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			name := fieldName(fe.Field())
			if _, seen := fields[name]; !seen {
				fields[name] = message(fe)
			}
		}
		return fields
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return map[string]string{"non_field_errors": "Invalid data."}
		}
		return map[string]string{fieldName(field): typeMessage(typeErr.Type.Kind())}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return map[string]string{"detail": "JSON parse error - " + err.Error()}
	case errors.Is(err, io.EOF):
		return map[string]string{"non_field_errors": "No data provided"}
	}
	return map[string]string{"non_field_errors": err.Error()}
}

// fieldName drops slice indexes and struct nesting: genre[1] -> genre.
func fieldName(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[:i]
	}
	return field
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return "Enter a valid email address."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "slug":
		return MsgInvalidSlug
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "notfuture":
		return "Year cannot be in the future."
	}
	return "Invalid value."
}

func typeMessage(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		return "Expected a list of items."
	}
	return "Invalid value."
}

// requireText reports a missing or blank string field.
func requireText(errs map[string]string, field string, value *string, required bool) {
	switch {
	case value == nil && required:
		errs[field] = MsgRequired
	case value != nil && strings.TrimSpace(*value) == "":
		errs[field] = MsgBlank
	}
}

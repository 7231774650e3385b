package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// fieldMessages maps a validator tag to the message shown for the failing field.
// %s receives the tag parameter.
var fieldMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"min":      "Must be at least %s",
	"max":      "Must be at most %s",
}

// InitValidator builds the shared validator. Field names in errors follow the json tags.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)
		validate = v
		log.Info().Msg("Validator initialized")
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// DecodeJSON reads a single JSON object from the request body into v.
// Unknown fields are ignored so clients can send back whole records on update.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}

	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}

	return nil
}

// decodeError turns a json decoding failure into a client facing AppError.
func decodeError(err error) error {
	var (
		maxBytesErr   *http.MaxBytesError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		invalidTarget *json.InvalidUnmarshalError
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return NewBadRequestError(constants.MsgRequestBodyTooLarge)
	case errors.Is(err, io.EOF):
		return NewBadRequestError(constants.MsgEmptyRequestBody)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewBadRequestError(constants.MsgMalformedJSON)
	case errors.As(err, &syntaxErr):
		return NewBadRequestError(fmt.Sprintf("%s (at position %d)", constants.MsgMalformedJSON, syntaxErr.Offset))
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", typeErr.Offset))
		}
		return NewValidationError(typeErr.Field, "Must be a "+typeErr.Type.String())
	case errors.As(err, &invalidTarget):
		return NewInternalServerError(err)
	default:
		return NewBadRequestError("Error decoding JSON: " + err.Error())
	}
}

// ValidateStruct checks v against its validate tags. A single failing field
// is reported on AppError.Field, several are collected in Details.
func ValidateStruct(v interface{}) error {
	InitValidator()

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewBadRequestError(err.Error())
	}

	if len(fieldErrs) == 1 {
		return NewValidationError(fieldErrs[0].Field(), fieldMessage(fieldErrs[0]))
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return NewValidationErrorWithDetails("Multiple validation errors", details)
}

// DecodeAndValidate decodes a JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

func fieldMessage(fe validator.FieldError) string {
	format, ok := fieldMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("Failed validation on the '%s' tag", fe.Tag())
	}
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, fe.Param())
	}
	return format
}

// NewValidationErrorWithDetails creates a validation error with one message per field.
func NewValidationErrorWithDetails(message string, details map[string]string) *AppError {
	appErr := New(ErrValidation, http.StatusBadRequest, message)
	appErr.Details = make(map[string]any, len(details))
	for field, msg := range details {
		appErr.Details[field] = msg
	}
	return appErr
}

// Package web defines common components for a web application.
package web

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-petr/pet-vending/pkg/errorspkg"
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindingError renders a request binding error.
//
// Validation failures are reported for the first failed field, everything
// else is reported as is. Failures of a slice body report its first element.
// Bodies that are not valid JSON of the expected shape are reported as
// errorspkg.ErrMalformedBody.
func BindingError(err error) Response {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Error(errorspkg.ErrMalformedBody)
	}

	var se binding.SliceValidationError
	if errors.As(err, &se) && len(se) > 0 {
		return BindingError(se[0])
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return Response{Error: GetErrorMsg(ve[0])}
	}

	return Error(err)
}

// GetErrorMsg returns a human readable message for the failed field.
func GetErrorMsg(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "uuid":
		return field + " must be a valid uuid"
	case "coin":
		return field + " is not an accepted coin"
	}

	return field + " is invalid"
}

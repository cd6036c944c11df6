package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrDoctorNotFound is returned when a doctor record does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrPatientNotFound is returned when a patient does not exist or belongs
	// to another user. The two cases are deliberately indistinguishable.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrMappingNotFound is returned when a mapping does not exist or its
	// patient belongs to another user.
	ErrMappingNotFound = errors.New("mapping not found")
	// ErrInvalidCredentials is returned for any failed login: unknown email,
	// wrong password, or inactive account.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// NonFieldKey is the response key for validation errors not tied to one field.
const NonFieldKey = "non_field_errors"

// ValidationError carries per-field messages rendered as a 400 response body.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error ready to accumulate
// field messages.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message for a field and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// AddNonField appends a message under the non-field key.
func (e *ValidationError) AddNonField(message string) *ValidationError {
	return e.Add(NonFieldKey, message)
}

// Empty reports whether no messages have been recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, field+": "+strings.Join(messages, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Detail is the body shape for 401/404/500 responses.
type Detail struct {
	Detail string `json:"detail"`
}

// HTTPError pairs a status code with a renderable response body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

func (e *HTTPError) Error() string {
	return http.StatusText(e.StatusCode)
}

// MapErrorToHTTP maps domain errors to HTTP status and body. Conflicts are
// rendered as 400 field errors, not 409, and cross-owner access as 404.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: ve.Fields}
	case errors.Is(err, ErrDoctorNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Body: Detail{Detail: "Doctor not found."}}
	case errors.Is(err, ErrPatientNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Body: Detail{Detail: "Patient not found."}}
	case errors.Is(err, ErrMappingNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Body: Detail{Detail: "Mapping not found."}}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Body:       map[string][]string{NonFieldKey: {"Unable to log in with provided credentials."}},
		}
	case errors.Is(err, ErrInvalidRefreshToken):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Body: Detail{Detail: "Invalid or expired refresh token."}}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Body: Detail{Detail: "Internal server error."}}
	}
}

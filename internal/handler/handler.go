package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"medrecords/internal/auth"
	apierrors "medrecords/internal/errors"
)

// currentUserID extracts the authenticated user's ID from the JWT the
// echo-jwt middleware parsed into the context. Registry operations receive it
// as an explicit parameter; nothing downstream reads ambient request state.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, apierrors.Detail{Detail: "Authentication credentials were not provided."})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, apierrors.Detail{Detail: "Invalid token."})
	}
	return claims.UserID, nil
}

// parseIDParam parses a numeric path parameter. A non-numeric id behaves like
// an unknown one.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, apierrors.Detail{Detail: "Not found."})
	}
	return uint(id), nil
}

// bindAndValidate binds the JSON body and runs struct validation, rendering
// failures as a field->messages map.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apierrors.Detail{Detail: "Invalid request body."})
	}
	if err := c.Validate(req); err != nil {
		return respondError(translateValidationError(err))
	}
	return nil
}

// respondError maps a domain error to its HTTP rendering.
func respondError(err error) error {
	httpErr := apierrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.Body)
}

func translateValidationError(err error) *apierrors.ValidationError {
	ve := apierrors.NewValidationError()
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ve.AddNonField("Invalid input.")
	}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), validationMessage(fe))
	}
	return ve
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	default:
		return "This field is invalid."
	}
}

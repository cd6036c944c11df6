package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"medrecords/internal/auth"
	"medrecords/internal/config"
	apierrors "medrecords/internal/errors"
	"medrecords/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	mappingHandler *handler.MappingHandler,
) {
	// DRF-style URLs carry a trailing slash; accept both forms.
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/doctors", doctorHandler.List)
	api.GET("/doctors/:id", doctorHandler.Get)

	// Secured routes: token parsing and rejection happen here, before any
	// handler-level validation runs.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apierrors.Detail{Detail: "Authentication credentials were not provided."})
		},
	}))

	// Doctor mutation routes
	secured.POST("/doctors", doctorHandler.Create)
	secured.PUT("/doctors/:id", doctorHandler.Update)
	secured.PATCH("/doctors/:id", doctorHandler.Update)
	secured.DELETE("/doctors/:id", doctorHandler.Delete)

	// Patient routes
	secured.GET("/patients", patientHandler.List)
	secured.POST("/patients", patientHandler.Create)
	secured.GET("/patients/:id", patientHandler.Get)
	secured.PUT("/patients/:id", patientHandler.Update)
	secured.PATCH("/patients/:id", patientHandler.Update)
	secured.DELETE("/patients/:id", patientHandler.Delete)

	// Mapping routes (GET /mappings/:id lists doctors for that patient)
	secured.GET("/mappings", mappingHandler.List)
	secured.POST("/mappings", mappingHandler.Create)
	secured.GET("/mappings/:id", mappingHandler.ListForPatient)
	secured.DELETE("/mappings/:id", mappingHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator. Field names in error messages
// come from json tags so they match the wire format.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

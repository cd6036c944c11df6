package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medrecords/internal/service"
)

// DoctorHandler handles doctor registry endpoints. Reads are public; the
// router places mutations behind the JWT middleware.
type DoctorHandler struct {
	doctorService service.DoctorService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(doctorService service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// CreateDoctorRequest represents a doctor creation request. Name is a single
// free-text field split into first/last name on the first space.
type CreateDoctorRequest struct {
	Name            string `json:"name" validate:"required"`
	Specialization  string `json:"specialization" validate:"required"`
	ExperienceYears uint   `json:"experience_years"`
	Email           string `json:"email" validate:"omitempty,email"`
	PhoneNumber     string `json:"phone_number"`
}

// UpdateDoctorRequest represents a doctor update request; absent fields keep
// their prior values.
type UpdateDoctorRequest struct {
	Name            *string `json:"name"`
	Specialization  *string `json:"specialization"`
	ExperienceYears *uint   `json:"experience_years"`
	Email           *string `json:"email" validate:"omitempty,email"`
	PhoneNumber     *string `json:"phone_number"`
}

// List godoc
// @Summary List all doctors
// @Tags doctors
// @Produce json
// @Success 200 {array} model.Doctor
// @Router /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.doctorService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

// Get godoc
// @Summary Retrieve a doctor
// @Tags doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} model.Doctor
// @Failure 404 {object} errors.Detail
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	doctor, err := h.doctorService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

// Create godoc
// @Summary Create a doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDoctorRequest true "Doctor data"
// @Success 201 {object} model.Doctor
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.Detail
// @Router /doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req CreateDoctorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doctor, err := h.doctorService.Create(c.Request().Context(), service.CreateDoctorInput{
		Name:            req.Name,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, doctor)
}

// Update godoc
// @Summary Update a doctor
// @Description PUT and PATCH behave identically: absent fields are left unchanged.
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Param request body UpdateDoctorRequest true "Fields to update"
// @Success 200 {object} model.Doctor
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /doctors/{id} [patch]
func (h *DoctorHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateDoctorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doctor, err := h.doctorService.Update(c.Request().Context(), id, service.UpdateDoctorInput{
		Name:            req.Name,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

// Delete godoc
// @Summary Delete a doctor
// @Tags doctors
// @Security BearerAuth
// @Param id path int true "Doctor ID"
// @Success 204
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.doctorService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

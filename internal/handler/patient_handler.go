package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"medrecords/internal/model"
	"medrecords/internal/service"
)

// PatientHandler handles patient registry endpoints. All routes sit behind
// the JWT middleware and operate solely on the caller's own patients.
type PatientHandler struct {
	patientService service.PatientService
}

// NewPatientHandler creates a new patient handler.
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// CreatePatientRequest represents a patient creation request.
type CreatePatientRequest struct {
	Name           string `json:"name" validate:"required"`
	Age            int    `json:"age"`
	Gender         string `json:"gender" validate:"required"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

// UpdatePatientRequest represents a patient update request; absent fields keep
// their prior values.
type UpdatePatientRequest struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}

// PatientListResponse is the paginated envelope for patient listings.
type PatientListResponse struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []model.Patient `json:"results"`
}

// List godoc
// @Summary List the caller's patients
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} PatientListResponse
// @Failure 401 {object} errors.Detail
// @Router /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}

	patients, total, err := h.patientService.List(c.Request().Context(), userID, page)
	if err != nil {
		return respondError(err)
	}

	resp := PatientListResponse{
		Count:   total,
		Results: patients,
	}
	if int64(page*service.PatientPageSize) < total {
		next := pageURL(c, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		resp.Previous = &prev
	}

	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Retrieve one of the caller's patients
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} model.Patient
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	patient, err := h.patientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

// Create godoc
// @Summary Create a patient owned by the caller
// @Tags patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePatientRequest true "Patient data"
// @Success 201 {object} model.Patient
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.Detail
// @Router /patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreatePatientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patient, err := h.patientService.Create(c.Request().Context(), userID, service.CreatePatientInput{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, patient)
}

// Update godoc
// @Summary Update one of the caller's patients
// @Description PUT and PATCH behave identically: absent fields are left unchanged.
// @Tags patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Param request body UpdatePatientRequest true "Fields to update"
// @Success 200 {object} model.Patient
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /patients/{id} [patch]
func (h *PatientHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePatientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patient, err := h.patientService.Update(c.Request().Context(), userID, id, service.UpdatePatientInput{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

// Delete godoc
// @Summary Delete one of the caller's patients
// @Tags patients
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 204
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.patientService.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pageURL(c echo.Context, page int) string {
	return fmt.Sprintf("%s?page=%d", c.Request().URL.Path, page)
}

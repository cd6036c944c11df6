package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"medrecords/internal/model"
	"medrecords/internal/service"
)

// MappingHandler handles patient-doctor assignment endpoints. All routes sit
// behind the JWT middleware and only touch mappings over the caller's patients.
type MappingHandler struct {
	mappingService service.MappingService
}

// NewMappingHandler creates a new mapping handler.
func NewMappingHandler(mappingService service.MappingService) *MappingHandler {
	return &MappingHandler{mappingService: mappingService}
}

// CreateMappingRequest represents an assignment creation request.
type CreateMappingRequest struct {
	PatientID uint `json:"patient_id" validate:"required"`
	DoctorID  uint `json:"doctor_id" validate:"required"`
}

// MappingResponse represents an assignment, including display strings for the
// linked patient and doctor.
type MappingResponse struct {
	ID        uint      `json:"id"`
	PatientID uint      `json:"patient_id"`
	DoctorID  uint      `json:"doctor_id"`
	Patient   string    `json:"patient"`
	Doctor    string    `json:"doctor"`
	CreatedAt time.Time `json:"created_at"`
}

func newMappingResponse(m model.PatientDoctorMapping) MappingResponse {
	return MappingResponse{
		ID:        m.ID,
		PatientID: m.PatientID,
		DoctorID:  m.DoctorID,
		Patient:   m.Patient.DisplayName(),
		Doctor:    m.Doctor.DisplayName(),
		CreatedAt: m.CreatedAt,
	}
}

func newMappingResponses(mappings []model.PatientDoctorMapping) []MappingResponse {
	out := make([]MappingResponse, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, newMappingResponse(m))
	}
	return out
}

// Create godoc
// @Summary Assign a doctor to one of the caller's patients
// @Tags mappings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMappingRequest true "Assignment data"
// @Success 201 {object} MappingResponse
// @Failure 400 {object} map[string][]string
// @Failure 401 {object} errors.Detail
// @Router /mappings [post]
func (h *MappingHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateMappingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	mapping, err := h.mappingService.Create(c.Request().Context(), userID, req.PatientID, req.DoctorID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newMappingResponse(*mapping))
}

// List godoc
// @Summary List assignments over the caller's patients
// @Tags mappings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} MappingResponse
// @Failure 401 {object} errors.Detail
// @Router /mappings [get]
func (h *MappingHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	mappings, err := h.mappingService.ListForCaller(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newMappingResponses(mappings))
}

// ListForPatient godoc
// @Summary List the doctors assigned to one of the caller's patients
// @Description The path parameter is a patient ID, not a mapping ID.
// @Tags mappings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Patient ID"
// @Success 200 {array} MappingResponse
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /mappings/{id} [get]
func (h *MappingHandler) ListForPatient(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	mappings, err := h.mappingService.ListForPatient(c.Request().Context(), userID, patientID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newMappingResponses(mappings))
}

// Delete godoc
// @Summary Remove an assignment from one of the caller's patients
// @Tags mappings
// @Security BearerAuth
// @Param id path int true "Mapping ID"
// @Success 204
// @Failure 401 {object} errors.Detail
// @Failure 404 {object} errors.Detail
// @Router /mappings/{id} [delete]
func (h *MappingHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.mappingService.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "medrecords/internal/errors"
	"medrecords/internal/model"
	"medrecords/internal/repository"
)

// MappingService handles the patient-doctor assignment ledger. A mapping may
// only be created or deleted by the owner of its patient.
type MappingService interface {
	Create(ctx context.Context, callerID, patientID, doctorID uint) (*model.PatientDoctorMapping, error)
	ListForCaller(ctx context.Context, callerID uint) ([]model.PatientDoctorMapping, error)
	ListForPatient(ctx context.Context, callerID, patientID uint) ([]model.PatientDoctorMapping, error)
	Delete(ctx context.Context, callerID, mappingID uint) error
}

type mappingService struct {
	mappingRepo repository.MappingRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

// NewMappingService creates a new mapping service.
func NewMappingService(
	mappingRepo repository.MappingRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) MappingService {
	return &mappingService{
		mappingRepo: mappingRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
	}
}

// Create assigns a doctor to a patient. Unresolvable ids are field errors, a
// foreign patient is a permission field error (still a 400, not a 403), and an
// existing pair is a non-field duplicate error.
func (s *mappingService) Create(ctx context.Context, callerID, patientID, doctorID uint) (*model.PatientDoctorMapping, error) {
	patient, err := s.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewValidationError().Add("patient_id", "Patient does not exist.")
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	if patient.CreatedByID != callerID {
		return nil, apierrors.NewValidationError().Add("patient_id", "You do not have permission to assign to this patient.")
	}

	doctor, err := s.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NewValidationError().Add("doctor_id", "Doctor does not exist.")
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}

	exists, err := s.mappingRepo.ExistsByPair(ctx, patientID, doctorID)
	if err != nil {
		return nil, fmt.Errorf("check mapping existence: %w", err)
	}
	if exists {
		return nil, duplicateMapping()
	}

	mapping := &model.PatientDoctorMapping{
		PatientID: patientID,
		DoctorID:  doctorID,
		Patient:   *patient,
		Doctor:    *doctor,
	}

	if err := s.mappingRepo.Create(ctx, mapping); err != nil {
		// The composite unique index catches the pair created between the
		// existence check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateMapping()
		}
		return nil, fmt.Errorf("create mapping: %w", err)
	}

	return mapping, nil
}

func (s *mappingService) ListForCaller(ctx context.Context, callerID uint) ([]model.PatientDoctorMapping, error) {
	return s.mappingRepo.ListByOwner(ctx, callerID)
}

// ListForPatient returns the mappings for one of the caller's patients. A
// patient that does not exist or belongs to someone else is not found.
func (s *mappingService) ListForPatient(ctx context.Context, callerID, patientID uint) ([]model.PatientDoctorMapping, error) {
	if _, err := s.patientRepo.FindByIDForOwner(ctx, patientID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return s.mappingRepo.ListByPatient(ctx, patientID)
}

// Delete removes a mapping. Mappings over foreign patients are invisible, so
// deleting one reports not found.
func (s *mappingService) Delete(ctx context.Context, callerID, mappingID uint) error {
	mapping, err := s.mappingRepo.FindByIDForOwner(ctx, mappingID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrMappingNotFound
		}
		return fmt.Errorf("find mapping: %w", err)
	}
	if err := s.mappingRepo.Delete(ctx, mapping.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrMappingNotFound
		}
		return fmt.Errorf("delete mapping: %w", err)
	}
	return nil
}

func duplicateMapping() *apierrors.ValidationError {
	return apierrors.NewValidationError().AddNonField("This doctor is already assigned to the patient.")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apierrors "medrecords/internal/errors"
	"medrecords/internal/model"
	"medrecords/internal/repository"
)

const (
	minPatientAge = 1
	maxPatientAge = 130

	// PatientPageSize is the fixed page size for patient listings.
	PatientPageSize = 20
)

// CreatePatientInput carries fields for creating a patient.
type CreatePatientInput struct {
	Name           string
	Age            int
	Gender         string
	Address        string
	MedicalHistory string
}

// UpdatePatientInput carries fields for updating a patient. Nil means "leave
// unchanged".
type UpdatePatientInput struct {
	Name           *string
	Age            *int
	Gender         *string
	Address        *string
	MedicalHistory *string
}

// PatientService handles patient registry operations. Every operation takes
// the caller's user ID explicitly and only ever touches that user's patients;
// a foreign patient surfaces as not found, never as forbidden.
type PatientService interface {
	List(ctx context.Context, ownerID uint, page int) (patients []model.Patient, total int64, err error)
	Get(ctx context.Context, ownerID, id uint) (*model.Patient, error)
	Create(ctx context.Context, ownerID uint, input CreatePatientInput) (*model.Patient, error)
	Update(ctx context.Context, ownerID, id uint, input UpdatePatientInput) (*model.Patient, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

type patientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new patient service.
func NewPatientService(patientRepo repository.PatientRepository) PatientService {
	return &patientService{patientRepo: patientRepo}
}

func (s *patientService) List(ctx context.Context, ownerID uint, page int) ([]model.Patient, int64, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.patientRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}
	patients, err := s.patientRepo.ListByOwner(ctx, ownerID, (page-1)*PatientPageSize, PatientPageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	return patients, total, nil
}

func (s *patientService) Get(ctx context.Context, ownerID, id uint) (*model.Patient, error) {
	patient, err := s.patientRepo.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return patient, nil
}

func (s *patientService) Create(ctx context.Context, ownerID uint, input CreatePatientInput) (*model.Patient, error) {
	ve := apierrors.NewValidationError()

	gender, err := normalizeGender(input.Gender)
	if err != nil {
		ve.Add("gender", err.Error())
	}
	if input.Age < minPatientAge || input.Age > maxPatientAge {
		ve.Add("age", "Age must be between 1 and 130.")
	}
	if !ve.Empty() {
		return nil, ve
	}

	first, last := splitFullName(input.Name)
	patient := &model.Patient{
		CreatedByID:    ownerID,
		FirstName:      first,
		LastName:       last,
		Age:            input.Age,
		Gender:         gender,
		Address:        input.Address,
		MedicalHistory: input.MedicalHistory,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return patient, nil
}

// Update applies a partial update; full updates are treated identically, so
// unspecified fields keep their prior values. The owner never changes.
func (s *patientService) Update(ctx context.Context, ownerID, id uint, input UpdatePatientInput) (*model.Patient, error) {
	patient, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	ve := apierrors.NewValidationError()
	if input.Gender != nil {
		gender, err := normalizeGender(*input.Gender)
		if err != nil {
			ve.Add("gender", err.Error())
		} else {
			patient.Gender = gender
		}
	}
	if input.Age != nil {
		if *input.Age < minPatientAge || *input.Age > maxPatientAge {
			ve.Add("age", "Age must be between 1 and 130.")
		} else {
			patient.Age = *input.Age
		}
	}
	if !ve.Empty() {
		return nil, ve
	}

	if input.Name != nil {
		patient.FirstName, patient.LastName = splitFullName(*input.Name)
	}
	if input.Address != nil {
		patient.Address = *input.Address
	}
	if input.MedicalHistory != nil {
		patient.MedicalHistory = *input.MedicalHistory
	}

	if err := s.patientRepo.Save(ctx, patient); err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}

	return patient, nil
}

func (s *patientService) Delete(ctx context.Context, ownerID, id uint) error {
	if err := s.patientRepo.DeleteForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrPatientNotFound
		}
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

// normalizeGender accepts common variants case-insensitively and maps them to
// the canonical values.
func normalizeGender(value string) (model.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "m", "male":
		return model.GenderMale, nil
	case "f", "female":
		return model.GenderFemale, nil
	case "o", "other":
		return model.GenderOther, nil
	default:
		return "", errors.New(`Gender must be one of: "male", "female", "other" (case-insensitive, or single-letter "M", "F", "O").`)
	}
}

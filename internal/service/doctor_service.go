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

// CreateDoctorInput carries fields for creating a doctor. Name is a single
// free-text field split into first/last on the first space.
type CreateDoctorInput struct {
	Name            string
	Specialization  string
	ExperienceYears uint
	Email           string
	PhoneNumber     string
}

// UpdateDoctorInput carries fields for updating a doctor. Nil means "leave
// unchanged"; an empty Email clears the stored address.
type UpdateDoctorInput struct {
	Name            *string
	Specialization  *string
	ExperienceYears *uint
	Email           *string
	PhoneNumber     *string
}

// DoctorService handles doctor registry operations. Reads are open to anyone;
// the transport layer gates mutation behind authentication.
type DoctorService interface {
	List(ctx context.Context) ([]model.Doctor, error)
	Get(ctx context.Context, id uint) (*model.Doctor, error)
	Create(ctx context.Context, input CreateDoctorInput) (*model.Doctor, error)
	Update(ctx context.Context, id uint, input UpdateDoctorInput) (*model.Doctor, error)
	Delete(ctx context.Context, id uint) error
}

type doctorService struct {
	doctorRepo repository.DoctorRepository
}

// NewDoctorService creates a new doctor service.
func NewDoctorService(doctorRepo repository.DoctorRepository) DoctorService {
	return &doctorService{doctorRepo: doctorRepo}
}

func (s *doctorService) List(ctx context.Context) ([]model.Doctor, error) {
	return s.doctorRepo.List(ctx)
}

func (s *doctorService) Get(ctx context.Context, id uint) (*model.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return doctor, nil
}

func (s *doctorService) Create(ctx context.Context, input CreateDoctorInput) (*model.Doctor, error) {
	email := strings.TrimSpace(input.Email)
	if email != "" {
		if err := s.checkEmailUnique(ctx, email, 0); err != nil {
			return nil, err
		}
	}

	first, last := splitFullName(input.Name)
	doctor := &model.Doctor{
		FirstName:       first,
		LastName:        last,
		Specialization:  input.Specialization,
		ExperienceYears: input.ExperienceYears,
		PhoneNumber:     input.PhoneNumber,
	}
	if email != "" {
		doctor.Email = &email
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateDoctorEmail()
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}

	return doctor, nil
}

// Update applies a partial update; full updates are treated identically, so
// unspecified fields keep their prior values.
func (s *doctorService) Update(ctx context.Context, id uint, input UpdateDoctorInput) (*model.Doctor, error) {
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			doctor.Email = nil
		} else {
			if err := s.checkEmailUnique(ctx, email, doctor.ID); err != nil {
				return nil, err
			}
			doctor.Email = &email
		}
	}
	if input.Name != nil {
		doctor.FirstName, doctor.LastName = splitFullName(*input.Name)
	}
	if input.Specialization != nil {
		doctor.Specialization = *input.Specialization
	}
	if input.ExperienceYears != nil {
		doctor.ExperienceYears = *input.ExperienceYears
	}
	if input.PhoneNumber != nil {
		doctor.PhoneNumber = *input.PhoneNumber
	}

	if err := s.doctorRepo.Save(ctx, doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateDoctorEmail()
		}
		return nil, fmt.Errorf("update doctor: %w", err)
	}

	return doctor, nil
}

func (s *doctorService) Delete(ctx context.Context, id uint) error {
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrDoctorNotFound
		}
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}

func (s *doctorService) checkEmailUnique(ctx context.Context, email string, excludeID uint) error {
	existing, err := s.doctorRepo.FindByEmail(ctx, email, excludeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check doctor email: %w", err)
	}
	if existing != nil {
		return duplicateDoctorEmail()
	}
	return nil
}

func duplicateDoctorEmail() *apierrors.ValidationError {
	return apierrors.NewValidationError().Add("email", "A doctor with this email already exists.")
}

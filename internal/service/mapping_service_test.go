package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apierrors "medrecords/internal/errors"
	"medrecords/internal/model"
)

func newMappingServiceWithMocks() (MappingService, *MockMappingRepository, *MockPatientRepository, *MockDoctorRepository) {
	mappingRepo := new(MockMappingRepository)
	patientRepo := new(MockPatientRepository)
	doctorRepo := new(MockDoctorRepository)
	return NewMappingService(mappingRepo, patientRepo, doctorRepo), mappingRepo, patientRepo, doctorRepo
}

func TestMappingService_Create(t *testing.T) {
	t.Run("successful assignment", func(t *testing.T) {
		svc, mappingRepo, patientRepo, doctorRepo := newMappingServiceWithMocks()
		patientRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Patient{ID: 5, CreatedByID: 1, FirstName: "Jane", LastName: "Smith"}, nil)
		doctorRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Doctor{ID: 9, FirstName: "Aisha", LastName: "Rahman"}, nil)
		mappingRepo.On("ExistsByPair", mock.Anything, uint(5), uint(9)).Return(false, nil)
		mappingRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.PatientDoctorMapping")).Return(nil)

		mapping, err := svc.Create(context.Background(), 1, 5, 9)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), mapping.PatientID)
		assert.Equal(t, uint(9), mapping.DoctorID)
		assert.Equal(t, "Jane Smith", mapping.Patient.DisplayName())
		assert.Equal(t, "Dr. Aisha Rahman", mapping.Doctor.DisplayName())
		mappingRepo.AssertExpectations(t)
		patientRepo.AssertExpectations(t)
		doctorRepo.AssertExpectations(t)
	})

	t.Run("unknown patient is a field error", func(t *testing.T) {
		svc, _, patientRepo, _ := newMappingServiceWithMocks()
		patientRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(context.Background(), 1, 404, 9)

		var ve *apierrors.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "patient_id")
	})

	t.Run("foreign patient is a field error, not a 403", func(t *testing.T) {
		svc, _, patientRepo, _ := newMappingServiceWithMocks()
		patientRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Patient{ID: 5, CreatedByID: 2}, nil)

		_, err := svc.Create(context.Background(), 1, 5, 9)

		var ve *apierrors.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "patient_id")
	})

	t.Run("unknown doctor is a field error", func(t *testing.T) {
		svc, _, patientRepo, doctorRepo := newMappingServiceWithMocks()
		patientRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Patient{ID: 5, CreatedByID: 1}, nil)
		doctorRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Create(context.Background(), 1, 5, 404)

		var ve *apierrors.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "doctor_id")
	})

	t.Run("duplicate pair is a non-field error", func(t *testing.T) {
		svc, mappingRepo, patientRepo, doctorRepo := newMappingServiceWithMocks()
		patientRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Patient{ID: 5, CreatedByID: 1}, nil)
		doctorRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Doctor{ID: 9}, nil)
		mappingRepo.On("ExistsByPair", mock.Anything, uint(5), uint(9)).Return(true, nil)

		_, err := svc.Create(context.Background(), 1, 5, 9)

		var ve *apierrors.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, apierrors.NonFieldKey)
	})

	t.Run("insert race on the unique pair is the same duplicate error", func(t *testing.T) {
		svc, mappingRepo, patientRepo, doctorRepo := newMappingServiceWithMocks()
		patientRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Patient{ID: 5, CreatedByID: 1}, nil)
		doctorRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.Doctor{ID: 9}, nil)
		mappingRepo.On("ExistsByPair", mock.Anything, uint(5), uint(9)).Return(false, nil)
		mappingRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.PatientDoctorMapping")).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Create(context.Background(), 1, 5, 9)

		var ve *apierrors.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, apierrors.NonFieldKey)
	})
}

func TestMappingService_ListForPatient(t *testing.T) {
	t.Run("owned patient lists its mappings", func(t *testing.T) {
		svc, mappingRepo, patientRepo, _ := newMappingServiceWithMocks()
		patientRepo.On("FindByIDForOwner", mock.Anything, uint(5), uint(1)).Return(&model.Patient{ID: 5, CreatedByID: 1}, nil)
		mappingRepo.On("ListByPatient", mock.Anything, uint(5)).Return([]model.PatientDoctorMapping{{ID: 1, PatientID: 5, DoctorID: 9}}, nil)

		mappings, err := svc.ListForPatient(context.Background(), 1, 5)

		assert.NoError(t, err)
		assert.Len(t, mappings, 1)
	})

	t.Run("foreign patient is not found", func(t *testing.T) {
		svc, _, patientRepo, _ := newMappingServiceWithMocks()
		patientRepo.On("FindByIDForOwner", mock.Anything, uint(5), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ListForPatient(context.Background(), 2, 5)

		assert.Equal(t, apierrors.ErrPatientNotFound, err)
	})
}

func TestMappingService_Delete(t *testing.T) {
	t.Run("owner deletes a mapping", func(t *testing.T) {
		svc, mappingRepo, _, _ := newMappingServiceWithMocks()
		mappingRepo.On("FindByIDForOwner", mock.Anything, uint(3), uint(1)).Return(&model.PatientDoctorMapping{ID: 3}, nil)
		mappingRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), 1, 3))
		mappingRepo.AssertExpectations(t)
	})

	t.Run("mapping over a foreign patient is not found", func(t *testing.T) {
		svc, mappingRepo, _, _ := newMappingServiceWithMocks()
		mappingRepo.On("FindByIDForOwner", mock.Anything, uint(3), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(context.Background(), 2, 3)

		assert.Equal(t, apierrors.ErrMappingNotFound, err)
	})
}

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

func TestPatientService_Create_AgeBounds(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		wantErr bool
	}{
		{"age zero rejected", 0, true},
		{"negative age rejected", -5, true},
		{"age above cap rejected", 131, true},
		{"lower bound accepted", 1, false},
		{"upper bound accepted", 130, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPatientRepository)
			if !tt.wantErr {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(nil)
			}

			svc := NewPatientService(mockRepo)
			patient, err := svc.Create(context.Background(), 1, CreatePatientInput{
				Name:   "Jane Smith",
				Age:    tt.age,
				Gender: "female",
			})

			if tt.wantErr {
				var ve *apierrors.ValidationError
				assert.True(t, errors.As(err, &ve))
				assert.Contains(t, ve.Fields, "age")
				assert.Nil(t, patient)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.age, patient.Age)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPatientService_Create_GenderNormalization(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected model.Gender
		wantErr  bool
	}{
		{"uppercase single letter", "M", model.GenderMale, false},
		{"lowercase single letter", "m", model.GenderMale, false},
		{"capitalized word", "Male", model.GenderMale, false},
		{"female word", "FEMALE", model.GenderFemale, false},
		{"f letter", "f", model.GenderFemale, false},
		{"other letter", "O", model.GenderOther, false},
		{"other word", "other", model.GenderOther, false},
		{"unknown value rejected", "xyz", "", true},
		{"empty value rejected", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPatientRepository)
			if !tt.wantErr {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(nil)
			}

			svc := NewPatientService(mockRepo)
			patient, err := svc.Create(context.Background(), 1, CreatePatientInput{
				Name:   "Jane Smith",
				Age:    30,
				Gender: tt.input,
			})

			if tt.wantErr {
				var ve *apierrors.ValidationError
				assert.True(t, errors.As(err, &ve))
				assert.Contains(t, ve.Fields, "gender")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, patient.Gender)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPatientService_Create_SetsOwnerAndDefaults(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(nil)

	svc := NewPatientService(mockRepo)
	patient, err := svc.Create(context.Background(), 42, CreatePatientInput{
		Name:   "Solo",
		Age:    25,
		Gender: "other",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), patient.CreatedByID)
	assert.Equal(t, "Solo", patient.FirstName)
	assert.Equal(t, "", patient.LastName)
	assert.Equal(t, "", patient.MedicalHistory)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_Get_ForeignPatientIsNotFound(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	// The owner-scoped query does not see other users' patients at all.
	mockRepo.On("FindByIDForOwner", mock.Anything, uint(5), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPatientService(mockRepo)
	patient, err := svc.Get(context.Background(), 2, 5)

	assert.Nil(t, patient)
	assert.Equal(t, apierrors.ErrPatientNotFound, err)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_Update_Partial(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("FindByIDForOwner", mock.Anything, uint(5), uint(1)).Return(&model.Patient{
		ID:             5,
		CreatedByID:    1,
		FirstName:      "Jane",
		LastName:       "Smith",
		Age:            30,
		Gender:         model.GenderFemale,
		MedicalHistory: "asthma",
	}, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(nil)

	svc := NewPatientService(mockRepo)
	age := 31
	patient, err := svc.Update(context.Background(), 1, 5, UpdatePatientInput{Age: &age})

	assert.NoError(t, err)
	assert.Equal(t, 31, patient.Age)
	// Everything else keeps its prior value, including the owner.
	assert.Equal(t, "Jane", patient.FirstName)
	assert.Equal(t, model.GenderFemale, patient.Gender)
	assert.Equal(t, "asthma", patient.MedicalHistory)
	assert.Equal(t, uint(1), patient.CreatedByID)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_Update_InvalidFields(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("FindByIDForOwner", mock.Anything, uint(5), uint(1)).Return(&model.Patient{
		ID:          5,
		CreatedByID: 1,
		Age:         30,
		Gender:      model.GenderFemale,
	}, nil)

	svc := NewPatientService(mockRepo)
	age := 131
	gender := "xyz"
	_, err := svc.Update(context.Background(), 1, 5, UpdatePatientInput{Age: &age, Gender: &gender})

	var ve *apierrors.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "age")
	assert.Contains(t, ve.Fields, "gender")
	mockRepo.AssertExpectations(t)
}

func TestPatientService_Update_ForeignPatientIsNotFound(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("FindByIDForOwner", mock.Anything, uint(5), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPatientService(mockRepo)
	name := "New Name"
	_, err := svc.Update(context.Background(), 2, 5, UpdatePatientInput{Name: &name})

	assert.Equal(t, apierrors.ErrPatientNotFound, err)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_Delete_ForeignPatientIsNotFound(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("DeleteForOwner", mock.Anything, uint(5), uint(2)).Return(gorm.ErrRecordNotFound)

	svc := NewPatientService(mockRepo)
	err := svc.Delete(context.Background(), 2, 5)

	assert.Equal(t, apierrors.ErrPatientNotFound, err)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_List_Pagination(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("CountByOwner", mock.Anything, uint(1)).Return(int64(45), nil)
	mockRepo.On("ListByOwner", mock.Anything, uint(1), 20, 20).Return([]model.Patient{{ID: 21}}, nil)

	svc := NewPatientService(mockRepo)
	patients, total, err := svc.List(context.Background(), 1, 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(45), total)
	assert.Len(t, patients, 1)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_List_PageFloor(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("CountByOwner", mock.Anything, uint(1)).Return(int64(3), nil)
	mockRepo.On("ListByOwner", mock.Anything, uint(1), 0, 20).Return([]model.Patient{}, nil)

	svc := NewPatientService(mockRepo)
	_, _, err := svc.List(context.Background(), 1, 0)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

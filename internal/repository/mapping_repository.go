package repository

import (
	"context"

	"gorm.io/gorm"

	"medrecords/internal/model"
)

// MappingRepository defines patient-doctor mapping persistence operations.
// Owner-scoped queries join through patients so a mapping over a foreign
// patient is never visible.
type MappingRepository interface {
	Create(ctx context.Context, mapping *model.PatientDoctorMapping) error
	FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.PatientDoctorMapping, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.PatientDoctorMapping, error)
	ListByPatient(ctx context.Context, patientID uint) ([]model.PatientDoctorMapping, error)
	ExistsByPair(ctx context.Context, patientID, doctorID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository builds a GORM-backed repository.
func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) Create(ctx context.Context, mapping *model.PatientDoctorMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *mappingRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.PatientDoctorMapping, error) {
	var mapping model.PatientDoctorMapping
	if err := r.db.WithContext(ctx).
		Joins("JOIN patients ON patients.id = patient_doctor_mappings.patient_id").
		Where("patient_doctor_mappings.id = ? AND patients.created_by_id = ?", id, ownerID).
		First(&mapping).Error; err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.PatientDoctorMapping, error) {
	var mappings []model.PatientDoctorMapping
	if err := r.db.WithContext(ctx).
		Joins("JOIN patients ON patients.id = patient_doctor_mappings.patient_id").
		Where("patients.created_by_id = ?", ownerID).
		Preload("Patient").
		Preload("Doctor").
		Order("patient_doctor_mappings.id").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *mappingRepository) ListByPatient(ctx context.Context, patientID uint) ([]model.PatientDoctorMapping, error) {
	var mappings []model.PatientDoctorMapping
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Preload("Patient").
		Preload("Doctor").
		Order("id").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *mappingRepository) ExistsByPair(ctx context.Context, patientID, doctorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.PatientDoctorMapping{}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *mappingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.PatientDoctorMapping{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

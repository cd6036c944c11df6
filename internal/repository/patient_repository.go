package repository

import (
	"context"

	"gorm.io/gorm"

	"medrecords/internal/model"
)

// PatientRepository defines patient persistence operations. Every read and
// write is scoped by owner at the query level, so a patient owned by another
// user is indistinguishable from one that does not exist.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Save(ctx context.Context, patient *model.Patient) error
	FindByID(ctx context.Context, id uint) (*model.Patient, error)
	FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Patient, error)
	ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Patient, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	DeleteForOwner(ctx context.Context, id, ownerID uint) error
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository builds a GORM-backed repository.
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) Save(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

// FindByID looks up a patient without owner scoping. Only the mapping service
// uses it, to distinguish "no such patient" from "not your patient" in its
// field errors.
func (r *patientRepository) FindByID(ctx context.Context, id uint) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Patient, error) {
	var patients []model.Patient
	if err := r.db.WithContext(ctx).
		Where("created_by_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Patient{}).
		Where("created_by_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *patientRepository) DeleteForOwner(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND created_by_id = ?", id, ownerID).
		Delete(&model.Patient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"medrecords/internal/model"
)

// DoctorRepository defines doctor persistence operations.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Save(ctx context.Context, doctor *model.Doctor) error
	FindByID(ctx context.Context, id uint) (*model.Doctor, error)
	// FindByEmail matches case-insensitively, skipping excludeID when non-zero
	// so updates don't collide with the record being updated.
	FindByEmail(ctx context.Context, email string, excludeID uint) (*model.Doctor, error)
	List(ctx context.Context) ([]model.Doctor, error)
	Delete(ctx context.Context, id uint) error
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository builds a GORM-backed repository.
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) Save(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, id uint) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string, excludeID uint) (*model.Doctor, error) {
	var doctor model.Doctor
	q := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	var doctors []model.Doctor
	if err := r.db.WithContext(ctx).Order("first_name, last_name").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Doctor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

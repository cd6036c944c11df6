package model

import "time"

// PatientDoctorMapping links one patient to one doctor. The (patient, doctor)
// pair is unique, enforced by a composite index at the storage layer so
// concurrent creates cannot both succeed.
type PatientDoctorMapping struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PatientID uint      `json:"patient_id" gorm:"not null;uniqueIndex:idx_patient_doctor"`
	DoctorID  uint      `json:"doctor_id" gorm:"not null;uniqueIndex:idx_patient_doctor"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Patient Patient `json:"-" gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Doctor  Doctor  `json:"-" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
}

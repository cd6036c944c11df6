package model

import (
	"strings"
	"time"
)

// Gender is a patient's normalized gender value.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient represents a patient record owned by exactly one user. The owner is
// set at creation and never changes; every query path filters by it.
type Patient struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CreatedByID    uint      `json:"-" gorm:"not null;index"`
	CreatedBy      User      `json:"-" gorm:"foreignKey:CreatedByID"`
	FirstName      string    `json:"first_name" gorm:"size:100;not null"`
	LastName       string    `json:"last_name" gorm:"size:100"`
	Age            int       `json:"age" gorm:"not null"`
	Gender         Gender    `json:"gender" gorm:"type:varchar(10);not null"`
	Address        string    `json:"address" gorm:"type:text"`
	MedicalHistory string    `json:"medical_history" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName renders the patient as "First Last", used in mapping responses.
func (p Patient) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

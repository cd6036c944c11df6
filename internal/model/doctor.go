package model

import (
	"strings"
	"time"
)

// Doctor represents a doctor record. Doctors are globally readable and carry
// no owner; only mutation requires an authenticated user.
type Doctor struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FirstName       string    `json:"first_name" gorm:"size:100;not null"`
	LastName        string    `json:"last_name" gorm:"size:100"`
	Specialization  string    `json:"specialization" gorm:"size:255;not null"`
	Email           *string   `json:"email" gorm:"uniqueIndex;size:255"` // optional; NULLs exempt from uniqueness
	PhoneNumber     string    `json:"phone_number" gorm:"size:20"`
	ExperienceYears uint      `json:"experience_years" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName renders the doctor as "Dr. First Last", used in mapping responses.
func (d Doctor) DisplayName() string {
	return strings.TrimSpace("Dr. " + strings.TrimSpace(d.FirstName+" "+d.LastName))
}

package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"medrecords/internal/config"
	"medrecords/internal/db"
	"medrecords/internal/model"
	"medrecords/internal/repository"
)

// seedDoctor holds one sample doctor record.
type seedDoctor struct {
	FirstName       string
	LastName        string
	Specialization  string
	Email           string
	PhoneNumber     string
	ExperienceYears uint
}

var sampleDoctors = []seedDoctor{
	{"Aisha", "Rahman", "Cardiology", "aisha.rahman@example.com", "+1-555-0101", 12},
	{"Marcus", "Webb", "Dermatology", "marcus.webb@example.com", "+1-555-0102", 7},
	{"Elena", "Petrova", "Pediatrics", "elena.petrova@example.com", "+1-555-0103", 15},
	{"Tom", "Okafor", "Orthopedics", "tom.okafor@example.com", "+1-555-0104", 9},
	{"Sofia", "Lindqvist", "Neurology", "sofia.lindqvist@example.com", "+1-555-0105", 20},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Doctor{}); err != nil {
		log.Fatalf("Failed to migrate doctors table: %v", err)
	}

	ctx := context.Background()
	doctorRepo := repository.NewDoctorRepository(gormDB)

	created := 0
	for _, d := range sampleDoctors {
		// Idempotent by email: skip doctors that already exist.
		existing, err := doctorRepo.FindByEmail(ctx, d.Email, 0)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check doctor %s: %v", d.Email, err)
		}
		if existing != nil {
			log.Printf("Doctor %s already exists, skipping", d.Email)
			continue
		}

		email := d.Email
		doctor := &model.Doctor{
			FirstName:       d.FirstName,
			LastName:        d.LastName,
			Specialization:  d.Specialization,
			Email:           &email,
			PhoneNumber:     d.PhoneNumber,
			ExperienceYears: d.ExperienceYears,
		}
		if err := doctorRepo.Create(ctx, doctor); err != nil {
			log.Fatalf("Failed to create doctor %s: %v", d.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d doctors created, %d skipped", created, len(sampleDoctors)-created)
}

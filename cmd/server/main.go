package main

import (
	"log"
	"net/http"
	"os"

	_ "medrecords/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"medrecords/internal/auth"
	"medrecords/internal/cache"
	"medrecords/internal/config"
	"medrecords/internal/db"
	"medrecords/internal/handler"
	"medrecords/internal/model"
	"medrecords/internal/repository"
	"medrecords/internal/router"
	"medrecords/internal/service"
)

// @title Healthcare Records API
// @version 1.0
// @description Healthcare records API with doctor and patient registries, patient-doctor assignments, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.PatientDoctorMapping{},
			&model.Patient{},
			&model.Doctor{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Doctor{},
		&model.Patient{},
		&model.PatientDoctorMapping{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	doctorRepo := repository.NewDoctorRepository(gormDB)
	patientRepo := repository.NewPatientRepository(gormDB)
	mappingRepo := repository.NewMappingRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	doctorService := service.NewDoctorService(doctorRepo)
	patientService := service.NewPatientService(patientRepo)
	mappingService := service.NewMappingService(mappingRepo, patientRepo, doctorRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	patientHandler := handler.NewPatientHandler(patientService)
	mappingHandler := handler.NewMappingHandler(mappingService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		doctorHandler,
		patientHandler,
		mappingHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

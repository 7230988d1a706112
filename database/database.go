package database

import (
	"fmt"
	"log"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect establishes a connection to PostgreSQL and returns the handle.
// Callers pass it down explicitly; there is no package-level instance.
func Connect() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey, which the engines rely on as the backstop
	// for concurrent check-then-insert sequences.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	return db
}

// Migrate performs database migrations
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Assignment{},
		&courseModels.Progress{},
		&courseModels.Certificate{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}

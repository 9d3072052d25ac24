package config

import (
	"fmt"

	"github.com/Govind-619/TripSphere/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// GormConfig is shared by the postgres connection and the test database
func GormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// InitDB opens the postgres connection described by cfg
func InitDB(cfg *Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db
	return nil
}

// Migrate creates or updates every table the service owns
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.UserRole{},
		&models.UserSettings{},
		&models.OrganizerProfile{},
		&models.Trip{},
		&models.Booking{},
		&models.Payment{},
		&models.GatewayOrder{},
		&models.Review{},
		&models.Wishlist{},
		&models.ReferralCode{},
		&models.Referral{},
		&models.EducationalTripRequest{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

package utils

import (
	"errors"
	"fmt"

	"github.com/Govind-619/TripSphere/models"
	"gorm.io/gorm"
)

// GetTripByID retrieves a trip by ID
func GetTripByID(db *gorm.DB, id string) (*models.Trip, error) {
	var trip models.Trip
	if err := db.Where("id = ?", id).First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// IncrementTripParticipants adds seats to a trip's participant counter in a
// single UPDATE. There is no capacity check: the seats were already paid for.
func IncrementTripParticipants(db *gorm.DB, tripID string, seats int) error {
	result := db.Model(&models.Trip{}).
		Where("id = ?", tripID).
		UpdateColumn("current_participants", gorm.Expr("current_participants + ?", seats))
	if result.Error != nil {
		return fmt.Errorf("increment participants: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrTripNotFound
	}
	return nil
}

// HasRole reports whether the user has been granted role
func HasRole(db *gorm.DB, userID, role string) (bool, error) {
	var count int64
	err := db.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

// GrantRole adds a role unless the user already has it
func GrantRole(db *gorm.DB, userID, role string) error {
	ok, err := HasRole(db, userID, role)
	if err != nil || ok {
		return err
	}
	return db.Create(&models.UserRole{UserID: userID, Role: role}).Error
}

// RatingSummary holds a trip's review aggregate
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int64   `json:"review_count"`
}

// TripRatingSummary computes the average rating and review count for a trip
func TripRatingSummary(db *gorm.DB, tripID string) (RatingSummary, error) {
	var row struct {
		Average *float64
		Count   int64
	}
	err := db.Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("trip_id = ?", tripID).
		Scan(&row).Error
	if err != nil {
		return RatingSummary{}, err
	}
	summary := RatingSummary{Count: row.Count}
	if row.Average != nil {
		summary.Average = *row.Average
	}
	return summary, nil
}

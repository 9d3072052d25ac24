package models

import (
	"errors"
	"time"
)

// Trip status constants
const (
	TripStatusDraft     = "draft"
	TripStatusPublished = "published"
	TripStatusCancelled = "cancelled"
)

var ErrTripNotFound = errors.New("trip not found")

// Trip is an organizer's published itinerary. CurrentParticipants is a
// running total of booked seats and is not capped against MaxParticipants.
type Trip struct {
	Base
	OrganizerID         string    `gorm:"size:36;index" json:"organizer_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Destination         string    `gorm:"index" json:"destination"`
	Category            string    `gorm:"index" json:"category"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Price               float64   `json:"price"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	ImageURL            string    `json:"image_url"`
	Status              string    `gorm:"index" json:"status"`
}

// SeatsLeft returns the remaining capacity, never below zero
func (t *Trip) SeatsLeft() int {
	left := t.MaxParticipants - t.CurrentParticipants
	if left < 0 {
		return 0
	}
	return left
}

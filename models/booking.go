package models

import (
	"time"
)

// Booking and payment status constants
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"

	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// Booking is created once per verified payment. The contact fields are a
// snapshot taken at checkout.
type Booking struct {
	Base
	TripID              string   `gorm:"size:36;index" json:"trip_id"`
	Trip                *Trip    `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	OrganizerID         string   `gorm:"size:36;index" json:"organizer_id"`
	UserID              string   `gorm:"size:36;index" json:"user_id"`
	Participants        int      `json:"participants"`
	TotalAmount         float64  `json:"total_amount"`
	BookingStatus       string   `json:"booking_status"`
	PaymentStatus       string   `json:"payment_status"`
	ContactName         string   `json:"contact_name"`
	ContactEmail        string   `json:"contact_email"`
	ContactPhone        string   `json:"contact_phone"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
	Payment             *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

// BookingDate is the date shown on invoices and exports
func (b *Booking) BookingDate() string {
	return b.CreatedAt.Format(time.DateOnly)
}

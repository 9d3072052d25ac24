package models

import (
	"time"
)

const PaymentMethodRazorpay = "razorpay"

// Payment records the gateway payment that paid for a booking
type Payment struct {
	Base
	BookingID     string    `gorm:"size:36;index" json:"booking_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	TransactionID string    `gorm:"index" json:"transaction_id"`
	PaymentDate   time.Time `json:"payment_date"`
}

// Gateway order statuses
const (
	GatewayOrderCreated = "created"
	GatewayOrderPaid    = "paid"
)

// GatewayOrder remembers what was authorized when a Razorpay order was opened
type GatewayOrder struct {
	Base
	RazorpayOrderID string `gorm:"uniqueIndex" json:"razorpay_order_id"`
	TripID          string `gorm:"size:36;index" json:"trip_id"`
	AmountMinor     int64  `json:"amount_minor"`
	Currency        string `json:"currency"`
	Seats           int    `json:"seats"`
	Status          string `json:"status"` // created, paid
}

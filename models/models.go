package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the uuid primary key and timestamps shared by every table
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a uuid when the caller did not provide one
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Role names stored in user_roles
const (
	RoleTraveler  = "traveler"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// Profile mirrors the auth user. Its ID is the auth service's user id.
type Profile struct {
	Base
	FullName  string `json:"full_name"`
	Email     string `gorm:"index" json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

// UserRole grants a role to a user
type UserRole struct {
	Base
	UserID string `gorm:"size:36;uniqueIndex:idx_user_role" json:"user_id"`
	Role   string `gorm:"uniqueIndex:idx_user_role" json:"role"`
}

// UserSettings holds per-user notification and display preferences
type UserSettings struct {
	Base
	UserID             string `gorm:"size:36;uniqueIndex" json:"user_id"`
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
	MarketingEmails    bool   `json:"marketing_emails"`
	Currency           string `json:"currency"`
	Language           string `json:"language"`
}

// DefaultUserSettings returns the settings a user starts with
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:             userID,
		EmailNotifications: true,
		SMSNotifications:   false,
		MarketingEmails:    false,
		Currency:           "INR",
		Language:           "en",
	}
}

// OrganizerProfile describes a user who publishes trips
type OrganizerProfile struct {
	Base
	UserID           string `gorm:"size:36;uniqueIndex" json:"user_id"`
	OrganizationName string `json:"organization_name"`
	Description      string `json:"description"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	Website          string `json:"website"`
	IsVerified       bool   `json:"is_verified"`
}

// Review is a traveler's rating of a trip
type Review struct {
	Base
	TripID    string `gorm:"size:36;uniqueIndex:idx_review_trip_user" json:"trip_id"`
	UserID    string `gorm:"size:36;uniqueIndex:idx_review_trip_user" json:"user_id"`
	BookingID string `gorm:"size:36" json:"booking_id,omitempty"`
	Rating    int    `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string `json:"comment"`
}

// EducationalTrip request statuses
const (
	RequestStatusPending  = "pending"
	RequestStatusReviewed = "reviewed"
	RequestStatusClosed   = "closed"
)

// EducationalTripRequest is an institution's enquiry for a custom group trip
type EducationalTripRequest struct {
	Base
	UserID               string `gorm:"size:36;index" json:"user_id,omitempty"`
	InstitutionName      string `json:"institution_name"`
	ContactPerson        string `json:"contact_person"`
	ContactEmail         string `json:"contact_email"`
	ContactPhone         string `json:"contact_phone"`
	StudentCount         int    `json:"student_count"`
	PreferredDestination string `json:"preferred_destination"`
	PreferredDates       string `json:"preferred_dates"`
	Budget               string `json:"budget"`
	Requirements         string `json:"requirements"`
	Status               string `gorm:"index" json:"status"`
}

// ChatMessage is one stored turn of a user's assistant conversation
type ChatMessage struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"size:36;index" json:"user_id"`
	ConversationID string    `gorm:"size:36;index" json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"errors"
)

var (
	ErrSelfReferral     = errors.New("cannot use your own referral code")
	ErrAlreadyReferred  = errors.New("referral already applied")
	ErrReferralNotFound = errors.New("invalid referral code")
)

const ReferralStatusCompleted = "completed"

// ReferralCode is the shareable code owned by a user
type ReferralCode struct {
	Base
	UserID string `gorm:"size:36;uniqueIndex" json:"user_id"`
	Code   string `gorm:"uniqueIndex" json:"code"`
	Uses   int    `json:"uses"`
}

// Referral links a referred user to the user whose code they applied
type Referral struct {
	Base
	ReferrerID     string `gorm:"size:36;index" json:"referrer_id"`
	ReferredUserID string `gorm:"size:36;uniqueIndex" json:"referred_user_id"`
	ReferralCode   string `json:"referral_code"`
	Status         string `json:"status"`
}

package controllers

import (
	"errors"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReviewRequest is a traveler's rating for a trip they booked
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// POST /v1/user/trips/:id/reviews
func CreateReview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	tripID := c.Param("id")
	utils.LogInfo("CreateReview called - User: %s, Trip: %s", userID, tripID)

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid review request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}

	if _, err := utils.GetTripByID(config.DB, tripID); err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			utils.NotFound(c, "Trip not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch trip", err.Error())
		return
	}

	var booking models.Booking
	err := config.DB.Where("trip_id = ? AND user_id = ? AND booking_status = ?", tripID, userID, models.BookingStatusConfirmed).
		Order("created_at ASC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogDebug("User %s has no confirmed booking for trip %s", userID, tripID)
		utils.Forbidden(c, "Only travelers with a confirmed booking can review this trip")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to check bookings", err.Error())
		return
	}

	var existing int64
	config.DB.Model(&models.Review{}).Where("trip_id = ? AND user_id = ?", tripID, userID).Count(&existing)
	if existing > 0 {
		utils.Conflict(c, "You have already reviewed this trip", nil)
		return
	}

	review := models.Review{
		TripID:    tripID,
		UserID:    userID,
		BookingID: booking.ID,
		Rating:    req.Rating,
		Comment:   utils.SanitizeString(req.Comment),
	}
	if err := config.DB.Create(&review).Error; err != nil {
		utils.LogError("Failed to create review: %v", err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}

	utils.LogInfo("Created review %s for trip %s", review.ID, tripID)
	utils.Created(c, "Review submitted successfully", review)
}

package controllers

import (
	"errors"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrganizerStats are the totals shown on the organizer dashboard
type OrganizerStats struct {
	TotalTrips        int64   `json:"total_trips"`
	PublishedTrips    int64   `json:"published_trips"`
	TotalBookings     int64   `json:"total_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalParticipants int64   `json:"total_participants"`
}

// GET /v1/user/bookings
func ListUserBookings(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("ListUserBookings called for user: %s", userID)

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count bookings: %v", err)
		utils.InternalServerError(c, "Failed to fetch bookings", err.Error())
		return
	}
	pagination.SetTotal(total)

	var bookings []models.Booking
	if err := config.DB.Preload("Trip").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&bookings).Error; err != nil {
		utils.LogError("Failed to fetch bookings: %v", err)
		utils.InternalServerError(c, "Failed to fetch bookings", err.Error())
		return
	}

	utils.LogDebug("Found %d bookings for user: %s", len(bookings), userID)
	utils.SuccessWithPagination(c, "Bookings retrieved successfully", bookings, pagination)
}

// findUserBooking loads one of the user's bookings with its trip and payment
func findUserBooking(userID, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := config.DB.Preload("Trip").Preload("Payment").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Booking not found", err)
		}
		return nil, utils.WrapError(err, "load booking")
	}
	return &booking, nil
}

// GET /v1/user/bookings/:id
func GetUserBooking(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	bookingID := c.Param("id")
	utils.LogInfo("GetUserBooking called for booking ID: %s", bookingID)

	booking, err := findUserBooking(userID, bookingID)
	if err != nil {
		utils.LogError("Failed to fetch booking %s: %v", bookingID, err)
		utils.RespondAppError(c, err)
		return
	}
	utils.Success(c, "Booking retrieved successfully", booking)
}

// organizerBookings returns the bookings made on the organizer's trips
func organizerBookings(organizerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := config.DB.Preload("Trip").Preload("Payment").
		Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// GET /v1/organizer/bookings
func ListOrganizerBookings(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("ListOrganizerBookings called for organizer: %s", organizerID)

	bookings, err := organizerBookings(organizerID)
	if err != nil {
		utils.LogError("Failed to fetch organizer bookings: %v", err)
		utils.InternalServerError(c, "Failed to fetch bookings", err.Error())
		return
	}
	utils.Success(c, "Bookings retrieved successfully", bookings)
}

// GET /v1/organizer/stats
func GetOrganizerStats(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetOrganizerStats called for organizer: %s", organizerID)

	var stats OrganizerStats
	db := config.DB
	if err := db.Model(&models.Trip{}).Where("organizer_id = ?", organizerID).Count(&stats.TotalTrips).Error; err != nil {
		utils.LogError("Failed to count trips: %v", err)
		utils.InternalServerError(c, "Failed to compute stats", err.Error())
		return
	}
	if err := db.Model(&models.Trip{}).
		Where("organizer_id = ? AND status = ?", organizerID, models.TripStatusPublished).
		Count(&stats.PublishedTrips).Error; err != nil {
		utils.LogError("Failed to count published trips: %v", err)
		utils.InternalServerError(c, "Failed to compute stats", err.Error())
		return
	}

	var totals struct {
		Bookings     int64
		Revenue      float64
		Participants int64
	}
	if err := db.Model(&models.Booking{}).
		Select("COUNT(*) AS bookings, COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(participants), 0) AS participants").
		Where("organizer_id = ? AND booking_status = ?", organizerID, models.BookingStatusConfirmed).
		Scan(&totals).Error; err != nil {
		utils.LogError("Failed to aggregate bookings: %v", err)
		utils.InternalServerError(c, "Failed to compute stats", err.Error())
		return
	}
	stats.TotalBookings = totals.Bookings
	stats.TotalRevenue = totals.Revenue
	stats.TotalParticipants = totals.Participants

	utils.LogDebug("Stats for organizer %s: %+v", organizerID, stats)
	utils.Success(c, "Stats retrieved successfully", stats)
}

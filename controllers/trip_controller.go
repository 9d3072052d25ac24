package controllers

import (
	"errors"
	"strings"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var tripSortOrders = map[string]string{
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"newest":     "created_at DESC",
	"start_date": "start_date ASC",
}

// searchTrips applies the public catalogue filters from the query string
func searchTrips(c *gin.Context, db *gorm.DB) *gorm.DB {
	query := db.Model(&models.Trip{}).Where("status = ?", models.TripStatusPublished)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(destination) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if destination := strings.TrimSpace(c.Query("destination")); destination != "" {
		query = query.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(destination)+"%")
	}
	if minPrice, ok := queryFloat(c, "min_price"); ok {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice, ok := queryFloat(c, "max_price"); ok {
		query = query.Where("price <= ?", maxPrice)
	}
	// A new session lets the caller count and then fetch with the same filters
	return query.Session(&gorm.Session{})
}

// GET /v1/trips
func ListTrips(c *gin.Context) {
	utils.LogInfo("ListTrips called")

	pagination := utils.NewPagination(c)
	query := searchTrips(c, config.DB)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count trips: %v", err)
		utils.InternalServerError(c, "Failed to fetch trips", err.Error())
		return
	}
	pagination.SetTotal(total)

	order, ok := tripSortOrders[c.Query("sort")]
	if !ok {
		order = tripSortOrders["newest"]
	}

	var trips []models.Trip
	if err := query.Order(order).Offset(pagination.Offset).Limit(pagination.Limit).Find(&trips).Error; err != nil {
		utils.LogError("Failed to fetch trips: %v", err)
		utils.InternalServerError(c, "Failed to fetch trips", err.Error())
		return
	}

	utils.LogDebug("Found %d of %d trips", len(trips), total)
	utils.SuccessWithPagination(c, "Trips retrieved successfully", trips, pagination)
}

// GET /v1/trips/:id
func GetTrip(c *gin.Context) {
	tripID := c.Param("id")
	utils.LogInfo("GetTrip called for trip ID: %s", tripID)

	trip, err := utils.GetTripByID(config.DB, tripID)
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			utils.NotFound(c, "Trip not found")
			return
		}
		utils.LogError("Failed to fetch trip %s: %v", tripID, err)
		utils.InternalServerError(c, "Failed to fetch trip", err.Error())
		return
	}
	if trip.Status != models.TripStatusPublished && trip.OrganizerID != currentUserID(c) {
		utils.NotFound(c, "Trip not found")
		return
	}

	var organizer *models.OrganizerProfile
	var profile models.OrganizerProfile
	if err := config.DB.Where("user_id = ?", trip.OrganizerID).First(&profile).Error; err == nil {
		organizer = &profile
	}

	rating, err := utils.TripRatingSummary(config.DB, trip.ID)
	if err != nil {
		utils.LogError("Failed to compute rating for trip %s: %v", trip.ID, err)
	}

	utils.Success(c, "Trip retrieved successfully", gin.H{
		"trip":           trip,
		"seats_left":     trip.SeatsLeft(),
		"organizer":      organizer,
		"average_rating": rating.Average,
		"review_count":   rating.Count,
	})
}

// GET /v1/trips/:id/reviews
func GetTripReviews(c *gin.Context) {
	tripID := c.Param("id")
	utils.LogInfo("GetTripReviews called for trip ID: %s", tripID)

	var reviews []models.Review
	if err := config.DB.Where("trip_id = ?", tripID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews: %v", err)
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}

	utils.LogDebug("Found %d reviews for trip ID: %s", len(reviews), tripID)
	utils.Success(c, "Reviews retrieved successfully", reviews)
}

package controllers

import (
	"errors"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// wishlistSummary lists the user's saved trips that still exist
func wishlistSummary(userID string) ([]gin.H, error) {
	var items []models.Wishlist
	if err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	summary := make([]gin.H, 0, len(items))
	for _, item := range items {
		trip, err := utils.GetTripByID(config.DB, item.TripID)
		if err != nil {
			continue
		}
		summary = append(summary, gin.H{
			"trip_id":     trip.ID,
			"title":       trip.Title,
			"destination": trip.Destination,
			"image_url":   trip.ImageURL,
			"price":       trip.Price,
			"start_date":  trip.StartDate,
			"seats_left":  trip.SeatsLeft(),
			"availability": func() string {
				if trip.Status != models.TripStatusPublished {
					return "Unavailable"
				}
				if trip.SeatsLeft() < 1 {
					return "Sold Out"
				}
				if trip.SeatsLeft() <= 3 {
					return "Only a few seats left"
				}
				return "Available"
			}(),
		})
	}
	return summary, nil
}

// AddToWishlist adds a trip to the user's wishlist
func AddToWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		TripID string `json:"trip_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}
	utils.LogInfo("AddToWishlist called - User: %s, Trip: %s", userID, req.TripID)

	trip, err := utils.GetTripByID(config.DB, req.TripID)
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			utils.NotFound(c, "Trip not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch trip", err.Error())
		return
	}
	if trip.Status != models.TripStatusPublished {
		utils.BadRequest(c, "Trip not available", nil)
		return
	}

	var existing int64
	config.DB.Model(&models.Wishlist{}).Where("user_id = ? AND trip_id = ?", userID, req.TripID).Count(&existing)
	if existing == 0 {
		if err := config.DB.Create(&models.Wishlist{UserID: userID, TripID: req.TripID}).Error; err != nil {
			utils.LogError("Failed to add trip %s to wishlist: %v", req.TripID, err)
			utils.InternalServerError(c, "Failed to update wishlist", err.Error())
			return
		}
	}

	summary, err := wishlistSummary(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch wishlist", err.Error())
		return
	}
	message := "Trip added to wishlist successfully"
	if existing > 0 {
		message = "Trip already in wishlist"
	}
	utils.Success(c, message, gin.H{"wishlist": summary})
}

// GetWishlist retrieves the user's wishlist
func GetWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetWishlist called for user: %s", userID)

	summary, err := wishlistSummary(userID)
	if err != nil {
		utils.LogError("Failed to fetch wishlist: %v", err)
		utils.InternalServerError(c, "Failed to fetch wishlist", err.Error())
		return
	}
	utils.Success(c, "Wishlist retrieved successfully", gin.H{"wishlist": summary})
}

// RemoveFromWishlist removes a trip from the wishlist
func RemoveFromWishlist(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	tripID := c.Param("tripId")
	utils.LogInfo("RemoveFromWishlist called - User: %s, Trip: %s", userID, tripID)

	result := config.DB.Where("user_id = ? AND trip_id = ?", userID, tripID).Delete(&models.Wishlist{})
	if result.Error != nil {
		utils.LogError("Failed to remove trip %s from wishlist: %v", tripID, result.Error)
		utils.InternalServerError(c, "Failed to update wishlist", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Trip not in wishlist")
		return
	}

	summary, err := wishlistSummary(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch wishlist", err.Error())
		return
	}
	utils.Success(c, "Trip removed from wishlist", gin.H{"wishlist": summary})
}

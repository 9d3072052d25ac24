package controllers

import (
	"errors"
	"time"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// TripRequest is the organizer's trip form
type TripRequest struct {
	Title           string    `json:"title" binding:"required,min=3,max=150"`
	Description     string    `json:"description" binding:"required"`
	Destination     string    `json:"destination" binding:"required"`
	Category        string    `json:"category" binding:"required"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required,gtefield=StartDate"`
	Price           float64   `json:"price" binding:"required,gt=0"`
	MaxParticipants int       `json:"max_participants" binding:"required,min=1"`
	ImageURL        string    `json:"image_url"`
	Status          string    `json:"status" binding:"omitempty,oneof=draft published cancelled"`
}

func (r TripRequest) apply(trip *models.Trip) {
	trip.Title = utils.SanitizeString(r.Title)
	trip.Description = utils.SanitizeString(r.Description)
	trip.Destination = utils.SanitizeString(r.Destination)
	trip.Category = r.Category
	trip.StartDate = r.StartDate
	trip.EndDate = r.EndDate
	trip.Price = r.Price
	trip.MaxParticipants = r.MaxParticipants
	trip.ImageURL = r.ImageURL
	if r.Status != "" {
		trip.Status = r.Status
	}
}

// loadOwnTrip fetches a trip and checks the caller organizes it
func loadOwnTrip(c *gin.Context, organizerID string) (*models.Trip, bool) {
	trip, err := utils.GetTripByID(config.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrTripNotFound) {
			utils.NotFound(c, "Trip not found")
			return nil, false
		}
		utils.LogError("Failed to fetch trip %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to fetch trip", err.Error())
		return nil, false
	}
	if trip.OrganizerID != organizerID {
		utils.LogError("Organizer %s attempted to modify trip %s", organizerID, trip.ID)
		utils.Forbidden(c, "You can only manage your own trips")
		return nil, false
	}
	return trip, true
}

// GET /v1/organizer/trips
func ListOrganizerTrips(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("ListOrganizerTrips called for organizer: %s", organizerID)

	var trips []models.Trip
	if err := config.DB.Where("organizer_id = ?", organizerID).Order("created_at DESC").Find(&trips).Error; err != nil {
		utils.LogError("Failed to fetch organizer trips: %v", err)
		utils.InternalServerError(c, "Failed to fetch trips", err.Error())
		return
	}
	utils.Success(c, "Trips retrieved successfully", trips)
}

// POST /v1/organizer/trips
func CreateTrip(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("CreateTrip called for organizer: %s", organizerID)

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid trip request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}

	trip := models.Trip{
		OrganizerID: organizerID,
		Status:      models.TripStatusDraft,
	}
	req.apply(&trip)

	if err := config.DB.Create(&trip).Error; err != nil {
		utils.LogError("Failed to create trip: %v", err)
		utils.InternalServerError(c, "Failed to create trip", err.Error())
		return
	}

	utils.LogInfo("Created trip %s for organizer: %s", trip.ID, organizerID)
	utils.Created(c, "Trip created successfully", trip)
}

// PUT /v1/organizer/trips/:id
func UpdateTrip(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateTrip called for trip ID: %s", c.Param("id"))

	trip, ok := loadOwnTrip(c, organizerID)
	if !ok {
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid trip request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}
	if req.MaxParticipants < trip.CurrentParticipants {
		utils.BadRequest(c, "Capacity cannot be below the number of booked participants", gin.H{
			"current_participants": trip.CurrentParticipants,
		})
		return
	}
	req.apply(trip)

	// The participant counter is owned by payment verification and is left out
	if err := config.DB.Model(trip).Select(
		"title", "description", "destination", "category", "start_date", "end_date",
		"price", "max_participants", "image_url", "status",
	).Updates(trip).Error; err != nil {
		utils.LogError("Failed to update trip %s: %v", trip.ID, err)
		utils.InternalServerError(c, "Failed to update trip", err.Error())
		return
	}

	utils.LogInfo("Updated trip %s", trip.ID)
	utils.Success(c, "Trip updated successfully", trip)
}

// DELETE /v1/organizer/trips/:id
func DeleteTrip(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("DeleteTrip called for trip ID: %s", c.Param("id"))

	trip, ok := loadOwnTrip(c, organizerID)
	if !ok {
		return
	}

	var bookings int64
	if err := config.DB.Model(&models.Booking{}).Where("trip_id = ?", trip.ID).Count(&bookings).Error; err != nil {
		utils.LogError("Failed to count bookings for trip %s: %v", trip.ID, err)
		utils.InternalServerError(c, "Failed to delete trip", err.Error())
		return
	}

	// Trips with bookings are kept for the travelers' records and cancelled instead
	if bookings > 0 {
		if err := config.DB.Model(trip).Update("status", models.TripStatusCancelled).Error; err != nil {
			utils.LogError("Failed to cancel trip %s: %v", trip.ID, err)
			utils.InternalServerError(c, "Failed to cancel trip", err.Error())
			return
		}
		utils.LogInfo("Cancelled trip %s with %d bookings", trip.ID, bookings)
		utils.Success(c, "Trip has bookings and was cancelled instead of deleted", gin.H{
			"trip_id":  trip.ID,
			"status":   models.TripStatusCancelled,
			"bookings": bookings,
		})
		return
	}

	if err := config.DB.Delete(trip).Error; err != nil {
		utils.LogError("Failed to delete trip %s: %v", trip.ID, err)
		utils.InternalServerError(c, "Failed to delete trip", err.Error())
		return
	}
	config.DB.Where("trip_id = ?", trip.ID).Delete(&models.Wishlist{})

	utils.LogInfo("Deleted trip %s", trip.ID)
	utils.Success(c, "Trip deleted successfully", gin.H{"trip_id": trip.ID})
}

// POST /v1/organizer/trips/:id/image
func UploadTripImage(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("UploadTripImage called for trip ID: %s", c.Param("id"))

	trip, ok := loadOwnTrip(c, organizerID)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", "Please select an image file to upload")
		return
	}
	path, err := utils.SaveImage(file, utils.UploadsDir, "trips")
	if err != nil {
		utils.LogError("Failed to save image for trip %s: %v", trip.ID, err)
		utils.RespondAppError(c, err)
		return
	}

	if err := config.DB.Model(trip).Update("image_url", path).Error; err != nil {
		utils.LogError("Failed to update image for trip %s: %v", trip.ID, err)
		utils.InternalServerError(c, "Failed to update trip image", err.Error())
		return
	}
	utils.Success(c, "Trip image uploaded successfully", gin.H{"image_url": path})
}

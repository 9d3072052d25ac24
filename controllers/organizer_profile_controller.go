package controllers

import (
	"errors"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrganizerProfileRequest is the public information an organizer publishes
type OrganizerProfileRequest struct {
	OrganizationName string `json:"organization_name" binding:"required,min=2,max=120"`
	Description      string `json:"description" binding:"max=2000"`
	ContactEmail     string `json:"contact_email" binding:"required,email"`
	ContactPhone     string `json:"contact_phone" binding:"omitempty,phone"`
	Website          string `json:"website" binding:"omitempty,url"`
}

func (r OrganizerProfileRequest) apply(p *models.OrganizerProfile) {
	p.OrganizationName = utils.SanitizeString(r.OrganizationName)
	p.Description = utils.SanitizeString(r.Description)
	p.ContactEmail = r.ContactEmail
	p.ContactPhone = r.ContactPhone
	p.Website = r.Website
}

// POST /v1/user/organizer
func BecomeOrganizer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("BecomeOrganizer called for user: %s", userID)

	var req OrganizerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}

	var existing int64
	config.DB.Model(&models.OrganizerProfile{}).Where("user_id = ?", userID).Count(&existing)
	if existing > 0 {
		utils.Conflict(c, "You are already registered as an organizer", nil)
		return
	}

	profile := models.OrganizerProfile{UserID: userID}
	req.apply(&profile)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return utils.GrantRole(tx, userID, models.RoleOrganizer)
	})
	if err != nil {
		utils.LogError("Failed to register organizer %s: %v", userID, err)
		utils.InternalServerError(c, "Failed to register organizer", err.Error())
		return
	}

	utils.LogInfo("User %s registered as organizer", userID)
	utils.Created(c, "Organizer profile created successfully", profile)
}

// GET /v1/user/organizer
func GetOrganizerProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var profile models.OrganizerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Organizer profile not found")
			return
		}
		utils.InternalServerError(c, "Failed to load organizer profile", err.Error())
		return
	}
	utils.Success(c, "Organizer profile retrieved successfully", profile)
}

// PUT /v1/user/organizer
func UpdateOrganizerProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateOrganizerProfile called for user: %s", userID)

	var req OrganizerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}

	var profile models.OrganizerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Organizer profile not found")
			return
		}
		utils.InternalServerError(c, "Failed to load organizer profile", err.Error())
		return
	}
	req.apply(&profile)

	// Verification is granted by admins only and is not part of the form
	if err := config.DB.Model(&profile).Select(
		"organization_name", "description", "contact_email", "contact_phone", "website",
	).Updates(&profile).Error; err != nil {
		utils.LogError("Failed to update organizer profile: %v", err)
		utils.InternalServerError(c, "Failed to update organizer profile", err.Error())
		return
	}
	utils.Success(c, "Organizer profile updated successfully", profile)
}

// PATCH /v1/admin/organizers/:id/verify
func VerifyOrganizer(c *gin.Context) {
	profileID := c.Param("id")
	utils.LogInfo("VerifyOrganizer called for organizer profile: %s", profileID)

	var req struct {
		Verified *bool `json:"verified"`
	}
	// An empty body means verify
	_ = c.ShouldBindJSON(&req)
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	result := config.DB.Model(&models.OrganizerProfile{}).Where("id = ?", profileID).Update("is_verified", verified)
	if result.Error != nil {
		utils.LogError("Failed to verify organizer %s: %v", profileID, result.Error)
		utils.InternalServerError(c, "Failed to update organizer", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Organizer profile not found")
		return
	}

	utils.LogInfo("Organizer %s verification set to %t", profileID, verified)
	utils.Success(c, "Organizer verification updated", gin.H{
		"id":          profileID,
		"is_verified": verified,
	})
}

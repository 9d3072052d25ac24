package controllers

import (
	"errors"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProfileRequest represents the profile update request
type UpdateProfileRequest struct {
	FullName  string `json:"full_name" binding:"omitempty,max=100"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

// UpdateSettingsRequest carries the preferences to change. Nil fields are left as they are.
type UpdateSettingsRequest struct {
	EmailNotifications *bool  `json:"email_notifications"`
	SMSNotifications   *bool  `json:"sms_notifications"`
	MarketingEmails    *bool  `json:"marketing_emails"`
	Currency           string `json:"currency" binding:"omitempty,len=3"`
	Language           string `json:"language" binding:"omitempty,min=2,max=5"`
}

// loadProfile returns the user's profile, creating it from the token's email
// the first time the user is seen
func loadProfile(c *gin.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := config.DB.Where("id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.Profile{Email: c.GetString(utils.ContextUserEmail)}
	profile.ID = userID
	if err := config.DB.Create(&profile).Error; err != nil {
		return nil, err
	}
	if err := utils.GrantRole(config.DB, userID, models.RoleTraveler); err != nil {
		utils.LogWarn("Failed to grant traveler role to %s: %v", userID, err)
	}
	utils.LogInfo("Created profile for user: %s", userID)
	return &profile, nil
}

// GetUserProfile returns the user's profile information
func GetUserProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetUserProfile called for user: %s", userID)

	profile, err := loadProfile(c, userID)
	if err != nil {
		utils.LogError("Failed to load profile: %v", err)
		utils.InternalServerError(c, "Failed to load profile", err.Error())
		return
	}

	var roles []string
	config.DB.Model(&models.UserRole{}).Where("user_id = ?", userID).Pluck("role", &roles)

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"profile": profile,
		"roles":   roles,
	})
}

// UpdateProfile handles profile updates (the email belongs to the auth service)
func UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateProfile called for user: %s", userID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", utils.BindingErrors(err))
		return
	}

	profile, err := loadProfile(c, userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load profile", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = utils.NormalizeName(req.FullName)
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No valid fields to update", nil)
		return
	}

	if err := config.DB.Model(profile).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile: %v", err)
		utils.InternalServerError(c, "Failed to update profile", err.Error())
		return
	}

	utils.LogInfo("Profile updated successfully for user: %s", userID)
	utils.Success(c, "Profile updated successfully", profile)
}

// UploadAvatar stores a profile image and points the profile at it
func UploadAvatar(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("UploadAvatar called for user: %s", userID)

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "No file uploaded", "Please select an image file to upload")
		return
	}

	profile, err := loadProfile(c, userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load profile", err.Error())
		return
	}

	path, err := utils.SaveImage(file, utils.UploadsDir, "avatars")
	if err != nil {
		utils.LogError("Failed to save avatar for user %s: %v", userID, err)
		utils.RespondAppError(c, err)
		return
	}

	if err := config.DB.Model(profile).Update("avatar_url", path).Error; err != nil {
		utils.LogError("Failed to update avatar for user %s: %v", userID, err)
		utils.InternalServerError(c, "Failed to update avatar", err.Error())
		return
	}

	utils.LogInfo("Avatar uploaded successfully for user: %s", userID)
	utils.Success(c, "Profile image uploaded successfully", gin.H{"avatar_url": path})
}

func loadSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := config.DB.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	settings = models.DefaultUserSettings(userID)
	if err := config.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// GET /v1/user/settings
func GetSettings(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetSettings called for user: %s", userID)

	settings, err := loadSettings(userID)
	if err != nil {
		utils.LogError("Failed to load settings: %v", err)
		utils.InternalServerError(c, "Failed to load settings", err.Error())
		return
	}
	utils.Success(c, "Settings retrieved successfully", settings)
}

// PUT /v1/user/settings
func UpdateSettings(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("UpdateSettings called for user: %s", userID)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", utils.BindingErrors(err))
		return
	}

	settings, err := loadSettings(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load settings", err.Error())
		return
	}

	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	if req.SMSNotifications != nil {
		settings.SMSNotifications = *req.SMSNotifications
	}
	if req.MarketingEmails != nil {
		settings.MarketingEmails = *req.MarketingEmails
	}
	if req.Currency != "" {
		settings.Currency = req.Currency
	}
	if req.Language != "" {
		settings.Language = req.Language
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.LogError("Failed to save settings: %v", err)
		utils.InternalServerError(c, "Failed to update settings", err.Error())
		return
	}
	utils.Success(c, "Settings updated successfully", settings)
}

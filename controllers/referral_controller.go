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

// getOrCreateReferralCode returns the user's code, generating one on first use
func getOrCreateReferralCode(db *gorm.DB, userID string) (*models.ReferralCode, error) {
	var code models.ReferralCode
	err := db.Where("user_id = ?", userID).First(&code).Error
	if err == nil {
		return &code, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var profile models.Profile
	db.Where("id = ?", userID).First(&profile)

	generated, err := utils.GenerateReferralCode(profile.FullName)
	if err != nil {
		return nil, err
	}
	code = models.ReferralCode{UserID: userID, Code: generated}
	if err := db.Create(&code).Error; err != nil {
		return nil, err
	}
	utils.LogInfo("Generated referral code %s for user: %s", code.Code, userID)
	return &code, nil
}

// GET /v1/user/referral
func GetReferral(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("GetReferral called for user: %s", userID)

	code, err := getOrCreateReferralCode(config.DB, userID)
	if err != nil {
		utils.LogError("Failed to load referral code: %v", err)
		utils.InternalServerError(c, "Failed to load referral code", err.Error())
		return
	}

	var referred int64
	config.DB.Model(&models.Referral{}).Where("referrer_id = ?", userID).Count(&referred)

	link := ""
	if config.App.FrontendURL != "" {
		link = strings.TrimRight(config.App.FrontendURL, "/") + "/auth?ref=" + code.Code
	}
	utils.Success(c, "Referral code retrieved successfully", gin.H{
		"code":           code.Code,
		"uses":           code.Uses,
		"referred_users": referred,
		"link":           link,
	})
}

// applyReferral links userID to the owner of rawCode
func applyReferral(db *gorm.DB, userID, rawCode string) (*models.Referral, error) {
	var referral *models.Referral
	err := db.Transaction(func(tx *gorm.DB) error {
		var code models.ReferralCode
		if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(rawCode))).First(&code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrReferralNotFound
			}
			return err
		}
		if code.UserID == userID {
			return models.ErrSelfReferral
		}

		var existing int64
		if err := tx.Model(&models.Referral{}).Where("referred_user_id = ?", userID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return models.ErrAlreadyReferred
		}

		referral = &models.Referral{
			ReferrerID:     code.UserID,
			ReferredUserID: userID,
			ReferralCode:   code.Code,
			Status:         models.ReferralStatusCompleted,
		}
		if err := tx.Create(referral).Error; err != nil {
			return err
		}
		return tx.Model(&models.ReferralCode{}).Where("id = ?", code.ID).
			UpdateColumn("uses", gorm.Expr("uses + ?", 1)).Error
	})
	return referral, err
}

// POST /v1/user/referral/apply
func ApplyReferral(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}
	utils.LogInfo("ApplyReferral called - User: %s, Code: %s", userID, req.Code)

	referral, err := applyReferral(config.DB, userID, req.Code)
	switch {
	case errors.Is(err, models.ErrReferralNotFound):
		utils.NotFound(c, err.Error())
		return
	case errors.Is(err, models.ErrSelfReferral):
		utils.BadRequest(c, err.Error(), nil)
		return
	case errors.Is(err, models.ErrAlreadyReferred):
		utils.Conflict(c, err.Error(), nil)
		return
	case err != nil:
		utils.LogError("Failed to apply referral: %v", err)
		utils.InternalServerError(c, "Failed to apply referral", err.Error())
		return
	}

	utils.LogInfo("User %s referred by %s", userID, referral.ReferrerID)
	utils.Success(c, "Referral applied successfully", referral)
}

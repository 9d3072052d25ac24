package controllers

import (
	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// EducationalRequestForm is an institution's enquiry for a group trip
type EducationalRequestForm struct {
	InstitutionName      string `json:"institution_name" binding:"required,max=200"`
	ContactPerson        string `json:"contact_person" binding:"required,max=100"`
	ContactEmail         string `json:"contact_email" binding:"required,email"`
	ContactPhone         string `json:"contact_phone" binding:"required,phone"`
	StudentCount         int    `json:"student_count" binding:"required,min=1"`
	PreferredDestination string `json:"preferred_destination" binding:"max=200"`
	PreferredDates       string `json:"preferred_dates" binding:"max=100"`
	Budget               string `json:"budget" binding:"max=100"`
	Requirements         string `json:"requirements" binding:"max=4000"`
}

// POST /v1/educational-requests
func CreateEducationalRequest(c *gin.Context) {
	utils.LogInfo("CreateEducationalRequest called")

	var form EducationalRequestForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.LogError("Invalid educational request: %v", err)
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}
	if utils.ContainsXSS(form.Requirements) || utils.ContainsXSS(form.InstitutionName) {
		utils.LogError("Rejected educational request with script content from %s", c.ClientIP())
		utils.BadRequest(c, "Request contains invalid content", nil)
		return
	}

	request := models.EducationalTripRequest{
		UserID:               currentUserID(c),
		InstitutionName:      utils.SanitizeString(form.InstitutionName),
		ContactPerson:        utils.NormalizeName(form.ContactPerson),
		ContactEmail:         form.ContactEmail,
		ContactPhone:         form.ContactPhone,
		StudentCount:         form.StudentCount,
		PreferredDestination: utils.SanitizeString(form.PreferredDestination),
		PreferredDates:       utils.SanitizeString(form.PreferredDates),
		Budget:               utils.SanitizeString(form.Budget),
		Requirements:         utils.SanitizeString(form.Requirements),
		Status:               models.RequestStatusPending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		utils.LogError("Failed to save educational request: %v", err)
		utils.InternalServerError(c, "Failed to submit request", err.Error())
		return
	}

	utils.LogInfo("Educational request %s submitted by %s", request.ID, request.InstitutionName)
	utils.Created(c, "Request submitted successfully. Our team will contact you soon.", request)
}

// GET /v1/admin/educational-requests
func ListEducationalRequests(c *gin.Context) {
	utils.LogInfo("ListEducationalRequests called")

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.EducationalTripRequest{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch requests", err.Error())
		return
	}
	pagination.SetTotal(total)

	var requests []models.EducationalTripRequest
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&requests).Error; err != nil {
		utils.LogError("Failed to fetch educational requests: %v", err)
		utils.InternalServerError(c, "Failed to fetch requests", err.Error())
		return
	}
	utils.SuccessWithPagination(c, "Requests retrieved successfully", requests, pagination)
}

// PATCH /v1/admin/educational-requests/:id
func UpdateEducationalRequestStatus(c *gin.Context) {
	requestID := c.Param("id")
	utils.LogInfo("UpdateEducationalRequestStatus called for request: %s", requestID)

	var req struct {
		Status string `json:"status" binding:"required,oneof=pending reviewed closed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}

	result := config.DB.Model(&models.EducationalTripRequest{}).Where("id = ?", requestID).Update("status", req.Status)
	if result.Error != nil {
		utils.LogError("Failed to update request %s: %v", requestID, result.Error)
		utils.InternalServerError(c, "Failed to update request", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Request not found")
		return
	}

	utils.Success(c, "Request status updated", gin.H{"id": requestID, "status": req.Status})
}

package controllers

import (
	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaveChatMessageRequest stores one turn of an assistant conversation.
// An empty conversation id starts a new conversation.
type SaveChatMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"omitempty,uuid"`
	Role           string `json:"role" binding:"required,oneof=user assistant"`
	Content        string `json:"content" binding:"required"`
}

// GET /v1/user/chat/messages
func ListChatMessages(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	conversationID := c.Query("conversation_id")
	utils.LogInfo("ListChatMessages called - User: %s, Conversation: %s", userID, conversationID)

	query := config.DB.Where("user_id = ?", userID)
	if conversationID != "" {
		query = query.Where("conversation_id = ?", conversationID)
	}

	var messages []models.ChatMessage
	if err := query.Order("created_at ASC").Find(&messages).Error; err != nil {
		utils.LogError("Failed to fetch chat messages: %v", err)
		utils.InternalServerError(c, "Failed to fetch messages", err.Error())
		return
	}
	utils.Success(c, "Messages retrieved successfully", messages)
}

// POST /v1/user/chat/messages
func SaveChatMessage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req SaveChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidRequest, utils.BindingErrors(err))
		return
	}
	if req.ConversationID == "" {
		req.ConversationID = uuid.NewString()
	}

	message := models.ChatMessage{
		UserID:         userID,
		ConversationID: req.ConversationID,
		Role:           req.Role,
		Content:        req.Content,
	}
	if err := config.DB.Create(&message).Error; err != nil {
		utils.LogError("Failed to save chat message: %v", err)
		utils.InternalServerError(c, "Failed to save message", err.Error())
		return
	}
	utils.LogDebug("Saved %s message in conversation %s", message.Role, message.ConversationID)
	utils.Created(c, "Message saved", message)
}

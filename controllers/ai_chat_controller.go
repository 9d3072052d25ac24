package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// AIChatRequest is the running conversation sent by the chat widget
type AIChatRequest struct {
	Messages         []utils.ChatTurn `json:"messages" binding:"required,dive"`
	ConversationType string           `json:"conversationType"`
}

// POST /functions/v1/ai-chat
func AIChat(c *gin.Context) {
	utils.LogInfo("AIChat called")

	cfg := config.App
	if cfg.AIGatewayKey == "" {
		utils.LogError("AI gateway key is not configured")
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrAINotConfigured)
		return
	}

	var req AIChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid chat request: %v", err)
		utils.FunctionError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.LogDebug("Forwarding %d chat turns, conversation type: %q", len(req.Messages), req.ConversationType)

	gateway := &utils.AIGatewayClient{
		URL:    cfg.AIGatewayURL,
		APIKey: cfg.AIGatewayKey,
		Model:  cfg.AIModel,
	}
	body, err := gateway.StreamChat(c.Request.Context(), req.ConversationType, req.Messages)
	if err != nil {
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) {
			switch upstream.StatusCode {
			case http.StatusTooManyRequests:
				utils.LogError("AI gateway rate limited the request")
				utils.FunctionError(c, http.StatusTooManyRequests, utils.ErrAIRateLimited)
				return
			case http.StatusPaymentRequired:
				utils.LogError("AI gateway requires payment")
				utils.FunctionError(c, http.StatusPaymentRequired, utils.ErrAIPaymentRequired)
				return
			}
		}
		utils.LogError("AI gateway error: %v", err)
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrAIGateway)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := c.Writer.Write(buf[:n]); err != nil {
				utils.LogError("Client went away during chat stream: %v", err)
				return
			}
			c.Writer.Flush()
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				utils.LogError("AI gateway stream interrupted: %v", readErr)
			}
			return
		}
	}
}

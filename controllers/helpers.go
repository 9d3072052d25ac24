package controllers

import (
	"strconv"
	"strings"

	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// currentUserID returns the authenticated user's id, or "" for anonymous requests
func currentUserID(c *gin.Context) string {
	return c.GetString(utils.ContextUserID)
}

// requireUser writes a 401 and returns false when no user is authenticated
func requireUser(c *gin.Context) (string, bool) {
	userID := currentUserID(c)
	if userID == "" {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

func queryFloat(c *gin.Context, key string) (float64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

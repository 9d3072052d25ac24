package middleware

import (
	"strings"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// AuthMiddleware requires a valid access token and stores the user id and
// email in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.LogError("Missing Authorization header")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, config.App.JWTSecret)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(utils.ContextUserID, claims.UserID)
		c.Set(utils.ContextUserEmail, claims.Email)
		utils.LogDebug("User %s authenticated", claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the user when a valid token is present and
// lets anonymous requests through
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := utils.ValidateToken(tokenString, config.App.JWTSecret); err == nil {
				c.Set(utils.ContextUserID, claims.UserID)
				c.Set(utils.ContextUserEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// RequireRole allows only users holding role. Must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(utils.ContextUserID)
		if userID == "" {
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		ok, err := utils.HasRole(config.DB, userID, role)
		if err != nil {
			utils.LogError("Failed to check %s role for user %s: %v", role, userID, err)
			utils.InternalServerError(c, utils.ErrInternalServer, nil)
			c.Abort()
			return
		}
		if !ok {
			utils.LogError("User %s attempted %s access", userID, role)
			utils.Forbidden(c, utils.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

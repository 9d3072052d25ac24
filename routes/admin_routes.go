package routes

import (
	"github.com/Govind-619/TripSphere/controllers"
	"github.com/Govind-619/TripSphere/middleware"
	"github.com/Govind-619/TripSphere/models"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		// Educational trip enquiries
		admin.GET("/educational-requests", controllers.ListEducationalRequests)
		admin.PATCH("/educational-requests/:id", controllers.UpdateEducationalRequestStatus)

		// Organizer verification
		admin.PATCH("/organizers/:id/verify", controllers.VerifyOrganizer)
	}
}

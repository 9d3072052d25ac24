package routes

import (
	"github.com/Govind-619/TripSphere/controllers"
	"github.com/Govind-619/TripSphere/middleware"
	"github.com/Govind-619/TripSphere/models"
	"github.com/gin-gonic/gin"
)

// initOrganizerRoutes registers the trip management routes
func initOrganizerRoutes(router *gin.RouterGroup) {
	organizer := router.Group("/organizer")
	organizer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleOrganizer))
	{
		organizer.GET("/trips", controllers.ListOrganizerTrips)
		organizer.POST("/trips", controllers.CreateTrip)
		organizer.PUT("/trips/:id", controllers.UpdateTrip)
		organizer.DELETE("/trips/:id", controllers.DeleteTrip)
		organizer.POST("/trips/:id/image", controllers.UploadTripImage)

		organizer.GET("/bookings", controllers.ListOrganizerBookings)
		organizer.GET("/bookings/export", controllers.ExportOrganizerBookings)
		organizer.GET("/stats", controllers.GetOrganizerStats)
	}
}

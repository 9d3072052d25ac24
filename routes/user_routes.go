package routes

import (
	"github.com/Govind-619/TripSphere/controllers"
	"github.com/Govind-619/TripSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initPublicRoutes registers the catalogue and enquiry routes
func initPublicRoutes(router *gin.RouterGroup) {
	trips := router.Group("/trips", middleware.OptionalAuthMiddleware())
	{
		trips.GET("", controllers.ListTrips)
		trips.GET("/:id", controllers.GetTrip)
		trips.GET("/:id/reviews", controllers.GetTripReviews)
	}

	router.POST("/educational-requests", middleware.OptionalAuthMiddleware(), controllers.CreateEducationalRequest)
}

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		// Profile
		user.GET("/profile", controllers.GetUserProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/profile/avatar", controllers.UploadAvatar)

		// Settings
		user.GET("/settings", controllers.GetSettings)
		user.PUT("/settings", controllers.UpdateSettings)

		// Bookings
		user.GET("/bookings", controllers.ListUserBookings)
		user.GET("/bookings/:id", controllers.GetUserBooking)
		user.GET("/bookings/:id/invoice", controllers.DownloadInvoice)

		// Reviews
		user.POST("/trips/:id/reviews", controllers.CreateReview)

		// Wishlist
		user.GET("/wishlist", controllers.GetWishlist)
		user.POST("/wishlist", controllers.AddToWishlist)
		user.DELETE("/wishlist/:tripId", controllers.RemoveFromWishlist)

		// Referral
		user.GET("/referral", controllers.GetReferral)
		user.POST("/referral/apply", controllers.ApplyReferral)

		// Assistant history
		user.GET("/chat/messages", controllers.ListChatMessages)
		user.POST("/chat/messages", controllers.SaveChatMessage)

		// Organizer onboarding
		user.POST("/organizer", controllers.BecomeOrganizer)
		user.GET("/organizer", controllers.GetOrganizerProfile)
		user.PUT("/organizer", controllers.UpdateOrganizerProfile)
	}
}

package routes

import (
	"net/http"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/controllers"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	if config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	if err := utils.RegisterValidators(); err != nil {
		utils.LogError("Failed to register validators: %v", err)
	}

	// Middleware has to be attached before the routes it should wrap
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// Preflights without an Origin header never reach the CORS handler
	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/"+utils.UploadsDir, utils.UploadsDir)

	// Serverless-style endpoints called by the web client
	functions := router.Group("/functions/v1")
	{
		functions.POST("/create-razorpay-order", controllers.CreateRazorpayOrder)
		functions.POST("/verify-razorpay-payment", controllers.VerifyRazorpayPayment)
		functions.POST("/ai-chat", controllers.AIChat)
	}

	// API version group
	api := router.Group("/v1")
	{
		initPublicRoutes(api)
		initUserRoutes(api)
		initOrganizerRoutes(api)
		initAdminRoutes(api)

		if !config.App.IsProduction() {
			api.GET("/dev/simulate-payment", controllers.SimulatePayment)
		}
	}

	return router
}

package controllers

import (
	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
)

// SimulatePayment signs a fake payment for an order so the verification
// endpoint can be exercised without the checkout widget. Not routed in production.
func SimulatePayment(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		utils.BadRequest(c, "Order ID is required", nil)
		return
	}

	// In a real checkout the gateway assigns this id
	paymentID := "pay_test_" + orderID
	signature := utils.RazorpaySignature(orderID, paymentID, config.App.RazorpayKeySecret)

	utils.Success(c, "Payment simulation completed successfully", gin.H{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	})
}

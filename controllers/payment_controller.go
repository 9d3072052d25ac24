package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateOrderRequest is the checkout context sent by the browser
type CreateOrderRequest struct {
	TripID              string  `json:"tripId" binding:"required"`
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	Seats               int     `json:"seats" binding:"required,min=1"`
	CustomerName        string  `json:"customerName" binding:"required"`
	CustomerEmail       string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone       string  `json:"customerPhone" binding:"required"`
	SpecialRequirements string  `json:"specialRequirements"`
}

// VerifyPaymentRequest carries the gateway callback plus the booking context
// re-sent by the browser. Amount and seats are taken as given.
type VerifyPaymentRequest struct {
	RazorpayOrderID     string  `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID   string  `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature   string  `json:"razorpay_signature" binding:"required"`
	TripID              string  `json:"tripId" binding:"required"`
	OrganizerID         string  `json:"organizerId"`
	Amount              float64 `json:"amount"`
	Seats               int     `json:"seats" binding:"required,min=1"`
	CustomerName        string  `json:"customerName"`
	CustomerEmail       string  `json:"customerEmail"`
	CustomerPhone       string  `json:"customerPhone"`
	SpecialRequirements string  `json:"specialRequirements"`
	UserID              string  `json:"userId" binding:"required"`
}

// POST /functions/v1/create-razorpay-order
func CreateRazorpayOrder(c *gin.Context) {
	utils.LogInfo("CreateRazorpayOrder called")

	cfg := config.App
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		utils.LogError("Razorpay credentials are not configured")
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrGatewayNotConfigured)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create order request: %v", err)
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrOrderCreation+": "+err.Error())
		return
	}

	amountMinor := utils.ToMinorUnits(req.Amount)
	utils.LogDebug("Creating gateway order - Trip ID: %s, Amount: %.2f, Paise: %d, Seats: %d",
		req.TripID, req.Amount, amountMinor, req.Seats)

	client := utils.NewOrderCreator(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	order, err := utils.CreateGatewayOrder(client, utils.GatewayOrderRequest{
		TripID:              req.TripID,
		AmountMinor:         amountMinor,
		Seats:               req.Seats,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		SpecialRequirements: req.SpecialRequirements,
		Receipt:             receiptFor(req.TripID, time.Now()),
	})
	if err != nil {
		utils.LogError("Failed to create gateway order for trip ID: %s: %v", req.TripID, err)
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrOrderCreation)
		return
	}
	utils.LogInfo("Created gateway order %s for trip ID: %s", order.ID, req.TripID)

	// The local record only feeds the mismatch warning in verification
	record := models.GatewayOrder{
		RazorpayOrderID: order.ID,
		TripID:          req.TripID,
		AmountMinor:     order.Amount,
		Currency:        order.Currency,
		Seats:           req.Seats,
		Status:          models.GatewayOrderCreated,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		utils.LogWarn("Failed to record gateway order %s: %v", order.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    cfg.RazorpayKeyID,
	})
}

// receiptFor builds a receipt within the gateway's 40 character limit
func receiptFor(tripID string, now time.Time) string {
	short := tripID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("trip_%s_%d", short, now.Unix())
}

// POST /functions/v1/verify-razorpay-payment
func VerifyRazorpayPayment(c *gin.Context) {
	utils.LogInfo("VerifyRazorpayPayment called")

	cfg := config.App
	if cfg.RazorpayKeySecret == "" {
		utils.LogError("Razorpay secret is not configured")
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrGatewayNotConfigured)
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify payment request: %v", err)
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrPaymentVerification)
		return
	}

	if !utils.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, cfg.RazorpayKeySecret) {
		utils.LogError("Payment signature mismatch - Order ID: %s, Payment ID: %s", req.RazorpayOrderID, req.RazorpayPaymentID)
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrPaymentVerification)
		return
	}
	utils.LogDebug("Payment signature verified for order ID: %s", req.RazorpayOrderID)

	db := config.DB
	warnOnOrderMismatch(db, req)

	booking, err := recordVerifiedPayment(db, req)
	if err != nil {
		utils.LogError("Failed to create booking for order ID: %s: %v", req.RazorpayOrderID, err)
		utils.FunctionError(c, http.StatusInternalServerError, utils.ErrBookingCreation)
		return
	}

	utils.LogInfo("Payment verified - Booking ID: %s, Order ID: %s, Payment ID: %s",
		booking.ID, req.RazorpayOrderID, req.RazorpayPaymentID)

	sendConfirmation(db, booking, req)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"bookingId": booking.ID,
		"message":   utils.MsgPaymentVerified,
	})
}

// recordVerifiedPayment writes the booking, then the payment, then bumps the
// trip counter. Only the booking insert can fail the call; later steps are
// logged and left as they are.
func recordVerifiedPayment(db *gorm.DB, req VerifyPaymentRequest) (*models.Booking, error) {
	booking := models.Booking{
		TripID:              req.TripID,
		OrganizerID:         req.OrganizerID,
		UserID:              req.UserID,
		Participants:        req.Seats,
		TotalAmount:         req.Amount,
		BookingStatus:       models.BookingStatusConfirmed,
		PaymentStatus:       models.PaymentStatusCompleted,
		ContactName:         req.CustomerName,
		ContactEmail:        req.CustomerEmail,
		ContactPhone:        req.CustomerPhone,
		SpecialRequirements: req.SpecialRequirements,
	}
	if err := db.Create(&booking).Error; err != nil {
		return nil, err
	}
	utils.LogDebug("Created booking %s for trip ID: %s", booking.ID, req.TripID)

	payment := models.Payment{
		BookingID:     booking.ID,
		Amount:        req.Amount,
		PaymentMethod: models.PaymentMethodRazorpay,
		PaymentStatus: models.PaymentStatusCompleted,
		TransactionID: req.RazorpayPaymentID,
		PaymentDate:   time.Now(),
	}
	if err := db.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment for booking %s: %v", booking.ID, err)
	}

	if err := utils.IncrementTripParticipants(db, req.TripID, req.Seats); err != nil {
		utils.LogError("Failed to update participant count for trip ID: %s: %v", req.TripID, err)
	}

	if err := db.Model(&models.GatewayOrder{}).
		Where("razorpay_order_id = ?", req.RazorpayOrderID).
		Update("status", models.GatewayOrderPaid).Error; err != nil {
		utils.LogWarn("Failed to mark gateway order %s paid: %v", req.RazorpayOrderID, err)
	}

	return &booking, nil
}

// warnOnOrderMismatch compares the re-sent amount and seats with what the
// order was opened for
func warnOnOrderMismatch(db *gorm.DB, req VerifyPaymentRequest) {
	var order models.GatewayOrder
	err := db.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogWarn("No recorded gateway order for %s", req.RazorpayOrderID)
		return
	}
	if err != nil {
		utils.LogWarn("Failed to load gateway order %s: %v", req.RazorpayOrderID, err)
		return
	}
	if order.AmountMinor != utils.ToMinorUnits(req.Amount) || order.Seats != req.Seats {
		utils.LogWarn("Verification for order %s does not match the order - Expected: %d paise/%d seats, Got: %d paise/%d seats",
			req.RazorpayOrderID, order.AmountMinor, order.Seats, utils.ToMinorUnits(req.Amount), req.Seats)
	}
	if order.Status == models.GatewayOrderPaid {
		utils.LogWarn("Gateway order %s was already verified once", req.RazorpayOrderID)
	}
}

// sendConfirmation mails the traveler in the background so a slow SMTP server
// never holds up the verification response
func sendConfirmation(db *gorm.DB, booking *models.Booking, req VerifyPaymentRequest) {
	cfg := config.App
	mailCfg := utils.EmailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	if req.CustomerEmail == "" || !mailCfg.Enabled() {
		return
	}
	tripTitle := ""
	if trip, err := utils.GetTripByID(db, req.TripID); err == nil {
		tripTitle = trip.Title
	}
	email := utils.BookingEmail{
		To:        req.CustomerEmail,
		Name:      req.CustomerName,
		TripTitle: tripTitle,
		BookingID: booking.ID,
		Seats:     booking.Participants,
		Amount:    booking.TotalAmount,
		PaymentID: req.RazorpayPaymentID,
		DetailURL: cfg.FrontendURL + "/booking-confirmation/" + booking.ID,
	}
	go func(bookingID string) {
		if err := utils.SendBookingConfirmation(mailCfg, email); err != nil {
			utils.LogError("Failed to send confirmation for booking %s: %v", bookingID, err)
		}
	}(booking.ID)
}

package utils

// Application constants
const (
	// Application name
	AppName = "TripSphere"

	// Default pagination limit
	DefaultPaginationLimit = 12

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Gateway currency; amounts are sent in paise
	GatewayCurrency = "INR"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextRequestID = "RequestID"
)

// Error messages
const (
	ErrUnauthorized = "Please login for access"
	ErrForbidden    = "Access forbidden"

	ErrInvalidRequest = "Invalid request"

	ErrInternalServer = "Internal server error"

	// Messages returned by the /functions endpoints
	ErrOrderCreation        = "Failed to create order"
	ErrGatewayNotConfigured = "Payment gateway is not configured"
	ErrPaymentVerification  = "Payment verification failed"
	ErrBookingCreation      = "Failed to create booking"
	ErrAIRateLimited        = "Rate limits exceeded, please try again later."
	ErrAIPaymentRequired    = "Payment required, please add funds to your Lovable AI workspace."
	ErrAIGateway            = "AI gateway error"
	ErrAINotConfigured      = "LOVABLE_API_KEY is not configured"
)

// Success messages
const (
	MsgPaymentVerified = "Payment verified and booking confirmed"
)

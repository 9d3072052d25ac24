// Package testutil sets up an in-memory database and request helpers for
// handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Govind-619/TripSphere/config"
	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestJWTSecret      = "test-jwt-secret"
	TestRazorpayKeyID  = "rzp_test_key"
	TestRazorpaySecret = "rzp_test_secret"
)

// TestSetup points config.App at test credentials and config.DB at a fresh
// in-memory database. The previous values are restored when the test ends.
func TestSetup(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prevApp, prevDB := config.App, config.DB
	t.Cleanup(func() {
		config.App, config.DB = prevApp, prevDB
	})

	config.App = TestConfig()
	config.DB = NewTestDB(t)
	return config.DB
}

// TestConfig returns configuration with every credential set
func TestConfig() *config.Config {
	return &config.Config{
		Env:               "test",
		Port:              "0",
		JWTSecret:         TestJWTSecret,
		RazorpayKeyID:     TestRazorpayKeyID,
		RazorpayKeySecret: TestRazorpaySecret,
		AIGatewayKey:      "test-ai-key",
		AIModel:           "google/gemini-2.5-flash",
		FrontendURL:       "http://localhost:5173",
	}
}

// NewTestDB opens a migrated in-memory sqlite database
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// CreateTestTrip creates a published trip owned by organizerID
func CreateTestTrip(t *testing.T, organizerID string, current int) *models.Trip {
	t.Helper()
	start := time.Now().AddDate(0, 1, 0)
	trip := &models.Trip{
		OrganizerID:         organizerID,
		Title:               "Spiti Valley Expedition",
		Description:         "Eight days across the high desert",
		Destination:         "Spiti, Himachal Pradesh",
		Category:            "adventure",
		StartDate:           start,
		EndDate:             start.AddDate(0, 0, 8),
		Price:               15000,
		MaxParticipants:     20,
		CurrentParticipants: current,
		Status:              models.TripStatusPublished,
	}
	require.NoError(t, config.DB.Create(trip).Error)
	return trip
}

// CreateTestBooking creates a confirmed booking for userID on trip
func CreateTestBooking(t *testing.T, trip *models.Trip, userID string, seats int) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		TripID:        trip.ID,
		OrganizerID:   trip.OrganizerID,
		UserID:        userID,
		Participants:  seats,
		TotalAmount:   trip.Price * float64(seats),
		BookingStatus: models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusCompleted,
		ContactName:   "Asha Rao",
		ContactEmail:  "asha@example.com",
		ContactPhone:  "9876543210",
	}
	require.NoError(t, config.DB.Create(booking).Error)
	return booking
}

// GrantTestRole gives userID a role
func GrantTestRole(t *testing.T, userID, role string) {
	t.Helper()
	require.NoError(t, utils.GrantRole(config.DB, userID, role))
}

// GetTestToken signs an access token for userID with the test secret
func GetTestToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, userID+"@example.com", TestJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// AuthHeaders returns the Authorization header for userID
func AuthHeaders(t *testing.T, userID string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + GetTestToken(t, userID)}
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Raw        []byte
	Body       map[string]interface{}
}

// MakeTestRequest serves req through router. JSON bodies are decoded into Body.
func MakeTestRequest(t *testing.T, router http.Handler, req TestRequest) TestResponse {
	t.Helper()

	var body []byte
	if req.Body != nil {
		switch b := req.Body.(type) {
		case string:
			body = []byte(b)
		default:
			var err error
			body, err = json.Marshal(req.Body)
			require.NoError(t, err)
		}
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBuffer(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	resp := TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Raw:        w.Body.Bytes(),
	}
	if w.Body.Len() > 0 && bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		_ = json.Unmarshal(w.Body.Bytes(), &resp.Body)
	}
	return resp
}

// Data returns the "data" object of a standard response
func (r TestResponse) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

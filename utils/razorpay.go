package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator opens orders on the payment gateway. *resources.Order from
// razorpay-go satisfies it.
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// NewOrderCreator builds the gateway order client. Tests replace it.
var NewOrderCreator = func(keyID, keySecret string) OrderCreator {
	return razorpay.NewClient(keyID, keySecret).Order
}

// GatewayOrderRequest is what the checkout needs the gateway to reserve
type GatewayOrderRequest struct {
	TripID              string
	AmountMinor         int64
	Seats               int
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	SpecialRequirements string
	Receipt             string
}

// GatewayOrder is the part of the gateway's order response the client uses
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// ToMinorUnits converts a major-unit amount to paise, rounding to the nearest unit
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateGatewayOrder submits one order. Customer details travel as opaque notes.
func CreateGatewayOrder(client OrderCreator, req GatewayOrderRequest) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":          req.AmountMinor,
		"currency":        GatewayCurrency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"tripId":              req.TripID,
			"seats":               strconv.Itoa(req.Seats),
			"customerName":        req.CustomerName,
			"customerEmail":       req.CustomerEmail,
			"customerPhone":       req.CustomerPhone,
			"specialRequirements": req.SpecialRequirements,
		},
	}

	resp, err := client.Create(data, nil)
	if err != nil {
		return nil, err
	}

	id, _ := resp["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("gateway response has no order id")
	}
	order := &GatewayOrder{
		ID:       id,
		Amount:   req.AmountMinor,
		Currency: GatewayCurrency,
	}
	if amount, ok := toInt64(resp["amount"]); ok {
		order.Amount = amount
	}
	if currency, ok := resp["currency"].(string); ok && currency != "" {
		order.Currency = currency
	}
	return order, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

// RazorpaySignature computes the hex HMAC-SHA256 of "orderID|paymentID"
func RazorpaySignature(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyRazorpaySignature reports whether signature was produced by the gateway
// for this order and payment
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	expected := RazorpaySignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

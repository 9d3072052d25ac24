package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSendBookingConfirmation(t *testing.T) {
	prev := MailSender
	defer func() { MailSender = prev }()

	var sent *gomail.Message
	MailSender = func(cfg EmailConfig, m *gomail.Message) error {
		sent = m
		return nil
	}

	cfg := EmailConfig{Host: "smtp.example.com", Port: 587, From: "bookings@tripsphere.in"}
	err := SendBookingConfirmation(cfg, BookingEmail{
		To:        "asha@example.com",
		Name:      "Asha",
		TripTitle: "Spiti Valley Expedition",
		BookingID: "booking-1",
		Seats:     3,
		Amount:    45000,
		PaymentID: "pay_1",
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"asha@example.com"}, sent.GetHeader("To"))
	var body bytes.Buffer
	_, err = sent.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Spiti Valley Expedition")
	assert.Contains(t, body.String(), "booking-1")
}

func TestSendBookingConfirmationDisabled(t *testing.T) {
	prev := MailSender
	defer func() { MailSender = prev }()

	called := false
	MailSender = func(cfg EmailConfig, m *gomail.Message) error {
		called = true
		return nil
	}

	assert.NoError(t, SendBookingConfirmation(EmailConfig{}, BookingEmail{To: "a@example.com"}))
	assert.False(t, called)
}

func TestSendBookingConfirmationError(t *testing.T) {
	prev := MailSender
	defer func() { MailSender = prev }()
	MailSender = func(cfg EmailConfig, m *gomail.Message) error {
		return errors.New("connection refused")
	}

	err := SendBookingConfirmation(EmailConfig{Host: "smtp.example.com"}, BookingEmail{To: "a@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestBookingConfirmationEscapesRequestFields(t *testing.T) {
	body := bookingConfirmationHTML(BookingEmail{
		Name:      `<a href="http://evil">click</a>`,
		TripTitle: "Goa <script>alert(1)</script>",
		BookingID: "booking-1",
		PaymentID: "pay_1",
	})

	assert.NotContains(t, body, `<a href="http://evil">`)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;a href=&#34;http://evil&#34;&gt;click&lt;/a&gt;")
	assert.Contains(t, body, "Goa &lt;script&gt;")
}

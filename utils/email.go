package utils

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP host has been configured
func (e EmailConfig) Enabled() bool {
	return e.Host != ""
}

// MailSender delivers a composed message. Tests replace it.
var MailSender = func(cfg EmailConfig, m *gomail.Message) error {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return d.DialAndSend(m)
}

// BookingEmail is the data shown in a booking confirmation
type BookingEmail struct {
	To        string
	Name      string
	TripTitle string
	BookingID string
	Seats     int
	Amount    float64
	PaymentID string
	DetailURL string
}

// BuildBookingConfirmation composes the confirmation message
func BuildBookingConfirmation(from string, b BookingEmail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", b.To)
	m.SetHeader("Subject", "Your TripSphere booking is confirmed")
	m.SetBody("text/html", bookingConfirmationHTML(b))
	return m
}

// bookingConfirmationHTML renders the message body. Name, title and payment
// reference come from the checkout request and are escaped.
func bookingConfirmationHTML(b BookingEmail) string {
	return fmt.Sprintf(`
		<h2>Hi %s, your trip is booked!</h2>
		<p><strong>%s</strong></p>
		<table>
			<tr><td>Booking ID</td><td>%s</td></tr>
			<tr><td>Travelers</td><td>%d</td></tr>
			<tr><td>Amount paid</td><td>₹%.2f</td></tr>
			<tr><td>Payment reference</td><td>%s</td></tr>
		</table>
		<p><a href="%s">View your booking</a></p>
	`, html.EscapeString(b.Name), html.EscapeString(b.TripTitle), html.EscapeString(b.BookingID),
		b.Seats, b.Amount, html.EscapeString(b.PaymentID), html.EscapeString(b.DetailURL))
}

// SendBookingConfirmation emails the traveler. It is a no-op when SMTP is
// not configured.
func SendBookingConfirmation(cfg EmailConfig, b BookingEmail) error {
	if !cfg.Enabled() {
		LogDebug("SMTP not configured, skipping confirmation email for booking %s", b.BookingID)
		return nil
	}
	if err := MailSender(cfg, BuildBookingConfirmation(cfg.From, b)); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

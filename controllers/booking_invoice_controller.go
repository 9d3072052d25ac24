package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice generates and returns a PDF invoice for the booking
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("Starting invoice download process")

	userID, ok := requireUser(c)
	if !ok {
		return
	}
	bookingID := c.Param("id")
	utils.LogInfo("Processing invoice download for booking ID: %s", bookingID)

	booking, err := findUserBooking(userID, bookingID)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogDebug("Booking not found for invoice download - Booking ID: %s, User ID: %s", bookingID, userID)
		} else {
			utils.LogError("Failed to load booking %s for invoice: %v", bookingID, err)
		}
		utils.RespondAppError(c, err)
		return
	}

	data, err := renderInvoice(booking)
	if err != nil {
		utils.LogError("Failed to render invoice for booking %s: %v", bookingID, err)
		utils.InternalServerError(c, "Failed to generate invoice", err.Error())
		return
	}
	utils.LogInfo("PDF invoice generated successfully for booking ID: %s", bookingID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_%s.pdf", shortID(booking.ID)))
	c.Data(http.StatusOK, "application/pdf", data)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderInvoice(booking *models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Company info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@tripsphere.in")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(90, 8, "Booking: "+shortID(booking.ID))
	pdf.Cell(60, 8, "Date: "+booking.BookingDate())
	pdf.Ln(8)
	pdf.Cell(90, 8, "Booking status: "+booking.BookingStatus)
	pdf.Cell(60, 8, "Payment: "+booking.PaymentStatus)
	pdf.Ln(8)
	if booking.Payment != nil {
		pdf.Cell(100, 8, "Payment reference: "+booking.Payment.TransactionID)
		pdf.Ln(8)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, booking.ContactName)
	pdf.Ln(6)
	pdf.Cell(100, 8, booking.ContactEmail)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+booking.ContactPhone)
	pdf.Ln(10)

	tripTitle, dates := "Trip", ""
	if booking.Trip != nil {
		tripTitle = booking.Trip.Title
		dates = booking.Trip.StartDate.Format("2006-01-02") + " to " + booking.Trip.EndDate.Format("2006-01-02")
	}
	perSeat := 0.0
	if booking.Participants > 0 {
		perSeat = booking.TotalAmount / float64(booking.Participants)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(80, 8, "Trip", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 8, "Dates", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Seats", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Per seat", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(80, 8, tripTitle, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, dates, "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, fmt.Sprintf("%d", booking.Participants), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", perSeat), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(150, 10, "Total (INR):", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", booking.TotalAmount), "", 1, "R", false, 0, "")

	if booking.SpecialRequirements != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, "Special requirements: "+booking.SpecialRequirements, "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for travelling with TripSphere!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

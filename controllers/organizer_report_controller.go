package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Govind-619/TripSphere/models"
	"github.com/Govind-619/TripSphere/utils"
)

var bookingExportHeaders = []string{
	"Booking ID", "Trip", "Booked On", "Traveler", "Email", "Phone",
	"Seats", "Amount", "Payment Ref", "Booking Status", "Payment Status",
}

// Organizer: Download bookings as Excel
func ExportOrganizerBookings(c *gin.Context) {
	organizerID, ok := requireUser(c)
	if !ok {
		return
	}
	utils.LogInfo("ExportOrganizerBookings called for organizer: %s", organizerID)

	bookings, err := organizerBookings(organizerID)
	if err != nil {
		utils.LogError("Failed to fetch bookings: %v", err)
		utils.InternalServerError(c, "Failed to fetch bookings", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d bookings for Excel export", len(bookings))

	file, err := buildBookingsWorkbook(bookings, time.Now())
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bookings_%s.xlsx", time.Now().Format("20060102")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		return
	}
	utils.LogInfo("Successfully exported %d bookings for organizer %s", len(bookings), organizerID)
}

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	return style
}

func buildBookingsWorkbook(bookings []models.Booking, now time.Time) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Bookings")
	if err != nil {
		return nil, err
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("TRIPSPHERE - Bookings Report")
	sheet.AddRow().AddCell().SetString("Generated: " + now.Format("2006-01-02 15:04"))
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range bookingExportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(boldStyle())
	}

	var revenue float64
	var seats int
	for _, b := range bookings {
		tripTitle := ""
		if b.Trip != nil {
			tripTitle = b.Trip.Title
		}
		paymentRef := ""
		if b.Payment != nil {
			paymentRef = b.Payment.TransactionID
		}

		row := sheet.AddRow()
		row.AddCell().SetString(b.ID)
		row.AddCell().SetString(tripTitle)
		row.AddCell().SetString(b.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(b.ContactName)
		row.AddCell().SetString(b.ContactEmail)
		row.AddCell().SetString(b.ContactPhone)
		row.AddCell().SetInt(b.Participants)
		row.AddCell().SetFloat(b.TotalAmount)
		row.AddCell().SetString(paymentRef)
		row.AddCell().SetString(b.BookingStatus)
		row.AddCell().SetString(b.PaymentStatus)

		if b.BookingStatus == models.BookingStatusConfirmed {
			revenue += b.TotalAmount
			seats += b.Participants
		}
	}

	sheet.AddRow()
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(boldStyle())

	summaryData := [][]string{
		{"Total Bookings", fmt.Sprintf("%d", len(bookings))},
		{"Total Seats", fmt.Sprintf("%d", seats)},
		{"Total Revenue", fmt.Sprintf("%.2f", revenue)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}
	return file, nil
}

package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Sushanth105/busResSys/internal/models"
	"github.com/phpdave11/gofpdf"
)

// ErrBookingCancelled is returned when a ticket is requested for a
// cancelled booking
var ErrBookingCancelled = errors.New("booking is cancelled")

// TicketService renders PDF e-tickets for confirmed bookings
type TicketService struct {
	bookings *BookingService
}

// NewTicketService creates a new TicketService
func NewTicketService(bookings *BookingService) *TicketService {
	return &TicketService{bookings: bookings}
}

// GenerateETicket renders the e-ticket of a booking owned by the user.
// Returns the PDF bytes and a suggested filename.
func (s *TicketService) GenerateETicket(userID, bookingID string) ([]byte, string, error) {
	view, err := s.bookings.GetBookingView(userID, bookingID)
	if err != nil {
		return nil, "", err
	}

	if view.BookingStatus == models.BookingStatusCancelled {
		return nil, "", ErrBookingCancelled
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID   : %s", view.ID),
		fmt.Sprintf("Status       : %s", strings.ToUpper(string(view.BookingStatus))),
		fmt.Sprintf("Seat         : %s", view.SeatLabel),
		fmt.Sprintf("Operator     : %s", view.Operator),
		fmt.Sprintf("Bus Class    : %s / %s", view.AirType, view.SeatType),
		fmt.Sprintf("Route        : %s -> %s", titleCity(view.StartCity), titleCity(view.EndCity)),
		fmt.Sprintf("Departure    : %s", view.DepartureTime),
		fmt.Sprintf("Arrival      : %s", view.ArrivalTime),
		fmt.Sprintf("Price        : %d", view.Price),
		fmt.Sprintf("Booked At    : %s", view.BookedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger (one seat). Please present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render ticket: %w", err)
	}

	filename := fmt.Sprintf("ticket-%s.pdf", view.ID)
	return buf.Bytes(), filename, nil
}

// titleCity capitalizes the first rune of a stored lowercase city name
// for display
func titleCity(city string) string {
	r, size := utf8.DecodeRuneInString(city)
	if r == utf8.RuneError && size <= 1 {
		return city
	}
	return string(unicode.ToUpper(r)) + city[size:]
}

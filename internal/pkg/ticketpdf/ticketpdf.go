package ticketpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

type Ticket struct {
	EventName     string
	EventDate     string
	EventTime     string
	EventLocation string
	AttendeeName  string
	TicketID      string
}

// Render draws an A5 ticket and returns the PDF bytes.
func Render(t Ticket) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(124, 58, 237)
	pdf.Rect(0, 0, 148, 45, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetXY(0, 12)
	pdf.CellFormat(148, 12, "DANCE.CASH", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(148, 8, "OFFICIAL EVENT TICKET", "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(14, 56)
	pdf.MultiCell(120, 9, t.EventName, "", "C", false)

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetX(14)
	pdf.CellFormat(120, 8, fmt.Sprintf("%v  -  %v", t.EventDate, t.EventTime), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(14)
	pdf.CellFormat(120, 8, t.EventLocation, "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	y := pdf.GetY()
	pdf.Line(25, y, 123, y)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetX(14)
	pdf.CellFormat(120, 6, "ATTENDEE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetX(14)
	pdf.CellFormat(120, 10, t.AttendeeName, "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetX(14)
	pdf.CellFormat(120, 5, fmt.Sprintf("Ticket ID: %v", t.TicketID), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Output -> %w", err)
	}

	return buf.Bytes(), nil
}

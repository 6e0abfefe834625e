package export

import (
	"fmt"
	"io"

	"washbay/internal/database"
	"washbay/internal/models"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the sales report as a compact PDF. Detail rows are capped
// so the document stays one page deep for typical ranges; the full detail
// lives in the Excel export.
func WritePDF(w io.Writer, summary *models.SalesSummary, byService []*database.ServiceSales, bookings []*models.Booking, rowCap int) error {
	if rowCap <= 0 {
		rowCap = models.DefaultExportRowCap
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Sales report: %s - %s",
		summary.From.Format("02.01.2006"), summary.To.Format("02.01.2006")),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	summaryLines := []string{
		fmt.Sprintf("Total bookings: %d", summary.TotalBookings),
		fmt.Sprintf("Completed bookings: %d", summary.CompletedBookings),
		fmt.Sprintf("Total revenue: %.2f", summary.TotalRevenue),
		fmt.Sprintf("Completed revenue: %.2f", summary.CompletedRevenue),
		fmt.Sprintf("Average order value: %.2f", summary.AverageOrderValue),
	}
	for _, line := range summaryLines {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Revenue by service", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	pdf.CellFormat(80, 7, "Service", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Bookings", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Revenue", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Avg rating", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, s := range byService {
		pdf.CellFormat(80, 6, s.ServiceName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", s.Bookings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", s.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", s.AvgRating), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Latest bookings", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(15, 7, "ID", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 7, "Service", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Payment", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	shown := bookings
	if len(shown) > rowCap {
		shown = shown[len(shown)-rowCap:]
	}
	for _, b := range shown {
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", b.ID), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, b.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, b.ServiceName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", b.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, b.PaymentMethod, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, b.Status, "1", 1, "L", false, 0, "")
	}
	if len(bookings) > rowCap {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Showing %d of %d bookings", rowCap, len(bookings)),
			"", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error writing pdf: %v", err)
	}
	return nil
}

// Package export renders sales reports as Excel workbooks and PDF documents.
package export

import (
	"fmt"
	"io"
	"time"

	"washbay/internal/database"
	"washbay/internal/models"

	"github.com/xuri/excelize/v2"
)

var excelHeaders = []string{"ID", "Date", "Service", "Customer ID", "Vehicle", "Amount", "Payment", "Status"}

// WriteExcel renders the sales report as an xlsx workbook: a summary block, a
// per-service breakdown and the full booking detail.
func WriteExcel(w io.Writer, summary *models.SalesSummary, byService []*database.ServiceSales, bookings []*models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sales"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Sales report: %s - %s",
		summary.From.Format("02.01.2006"), summary.To.Format("02.01.2006")))
	_ = f.MergeCell(sheetName, "A1", "H1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	row := 3
	row = writeSummaryBlock(f, sheetName, row, summary)
	row = writeServiceBlock(f, sheetName, row+1, byService)
	writeBookingRows(f, sheetName, row+1, bookings)

	_ = f.SetColWidth(sheetName, "A", "A", 10)
	_ = f.SetColWidth(sheetName, "B", "H", 18)

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %v", err)
	}
	return nil
}

func writeSummaryBlock(f *excelize.File, sheet string, row int, summary *models.SalesSummary) int {
	lines := [][2]any{
		{"Total bookings", summary.TotalBookings},
		{"Completed bookings", summary.CompletedBookings},
		{"Total revenue", summary.TotalRevenue},
		{"Completed revenue", summary.CompletedRevenue},
		{"Average order value", summary.AverageOrderValue},
	}
	for _, line := range lines {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, cellA, line[0])
		_ = f.SetCellValue(sheet, cellB, line[1])
		row++
	}
	return row
}

func writeServiceBlock(f *excelize.File, sheet string, row int, byService []*database.ServiceSales) int {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	headers := []string{"Service", "Bookings", "Revenue", "Avg rating"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++

	for _, s := range byService {
		values := []any{s.ServiceName, s.Bookings, s.Revenue, s.AvgRating}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	return row
}

func writeBookingRows(f *excelize.File, sheet string, row int, bookings []*models.Booking) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++

	for _, b := range bookings {
		values := []any{
			b.ID,
			b.CreatedAt.Format("2006-01-02"),
			b.ServiceName,
			b.UserID,
			vehicleLabel(b),
			b.TotalAmount,
			b.PaymentMethod,
			b.Status,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}
}

func vehicleLabel(b *models.Booking) string {
	return fmt.Sprintf("%s %s (%s)", b.Vehicle.Brand, b.Vehicle.Model, b.Vehicle.Plate)
}

// FileName builds the export file name for the range.
func FileName(from, to time.Time, ext string) string {
	return fmt.Sprintf("sales_%s_to_%s.%s", from.Format("2006-01-02"), to.Format("2006-01-02"), ext)
}

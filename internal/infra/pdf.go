package infra

// pdf.go — monthly attendance report generation using go-pdf/fpdf.
// One A4 document per report: a header with the month, then a table of
// (employee, date, shift, status, check-in, check-out) rows.
// The output file is saved to storagePath/attendance_{year}_{month}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateAttendanceReportPDF writes the month's attendance table to a PDF.
// records must carry their Employee preloaded. Returns the absolute path to
// the generated file.
func GenerateAttendanceReportPDF(records []model.Attendance, year int, month time.Month, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("attendance_%d_%02d.pdf", year, month)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Al-Jawhara Land Cleaning Office", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	title := fmt.Sprintf("Attendance Report — %s %d", month.String(), year)
	pdf.CellFormat(contentW, 6, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	colEmployee := contentW * 0.30
	colDate := contentW * 0.16
	colShift := contentW * 0.14
	colStatus := contentW * 0.14
	colIn := contentW * 0.13
	colOut := contentW * 0.13

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(colEmployee, 6, "Employee", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colDate, 6, "Date", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colShift, 6, "Shift", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colStatus, 6, "Status", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colIn, 6, "Check-in", "B", 0, "R", false, 0, "")
		pdf.CellFormat(colOut, 6, "Check-out", "B", 1, "R", false, 0, "")
	}
	writeHeader()

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range records {
		if pdf.GetY() > pageH-20 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 8)
		}
		name := ""
		if rec.Employee != nil {
			name = rec.Employee.FullName
		}
		if len(name) > 30 {
			name = name[:29] + "…"
		}
		checkIn, checkOut := "-", "-"
		if rec.CheckIn != nil {
			checkIn = rec.CheckIn.Format("15:04")
		}
		if rec.CheckOut != nil {
			checkOut = rec.CheckOut.Format("15:04")
		}
		pdf.CellFormat(colEmployee, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colDate, 5, rec.Date.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colShift, 5, rec.ShiftType, "", 0, "L", false, 0, "")
		pdf.CellFormat(colStatus, 5, rec.Status, "", 0, "L", false, 0, "")
		pdf.CellFormat(colIn, 5, checkIn, "", 0, "R", false, 0, "")
		pdf.CellFormat(colOut, 5, checkOut, "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	generated := fmt.Sprintf("Generated %s — %d records", time.Now().Format("02/01/2006 15:04"), len(records))
	pdf.CellFormat(contentW, 4, generated, "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

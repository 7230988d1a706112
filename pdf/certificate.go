package pdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// GenerateCertificate renders the fixed-layout completion certificate:
// A4 portrait with a border, heading, student, course title, completion
// date and a signature line.
func GenerateCertificate(studentEmail, courseTitle, completionDate string) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	// Certificate border
	doc.SetLineWidth(0.6)
	doc.Rect(15, 15, 180, 267, "D")

	doc.SetY(55)
	doc.SetFont("Helvetica", "B", 32)
	doc.MultiCell(0, 14, "CERTIFICATE OF COMPLETION", "", "C", false)

	doc.Ln(12)
	doc.SetFont("Helvetica", "", 16)
	doc.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	doc.Ln(10)
	doc.SetFont("Helvetica", "B", 24)
	doc.MultiCell(0, 10, studentEmail, "", "C", false)

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 16)
	doc.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 20)
	doc.MultiCell(0, 9, courseTitle, "", "C", false)

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 14)
	doc.CellFormat(0, 7, "Completed on: "+completionDate, "", 1, "C", false, 0, "")

	// Signature line
	doc.Ln(35)
	doc.SetX(30)
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(80, 6, "_________________________", "", 1, "L", false, 0, "")
	doc.SetX(30)
	doc.CellFormat(80, 6, "Authorized Signature", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package pdf renders a one-page request summary that rides along with the
// internal notification email. The page shows a header bar, one labelled row
// per collected field and a footer with the generation time.
package pdf

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Field is one labelled value on the summary.
type Field struct {
	Label string
	Value string
}

// GenerateSummary writes a single-page PDF listing fields under title to w.
func GenerateSummary(title string, fields []Field, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	drawSummary(pdf, tr, title, fields)

	return pdf.Output(w)
}

func drawSummary(pdf *fpdf.Fpdf, tr func(string) string, title string, fields []Field) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(17, 17, 17)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, tr("CONCIERGE  "+title), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 15

	// ── Fields ───────────────────────────────────────────────────────────────
	labelW := contentW * 0.45
	valueW := contentW - labelW
	for i, f := range fields {
		fill := i%2 == 0
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		pdf.SetXY(marginL, y)
		pdf.SetFont("Helvetica", "B", 8.5)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(labelW, 7, tr(f.Label), "", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(17, 17, 17)
		// Long free-text answers wrap inside the value column.
		pdf.MultiCell(valueW, 7, tr(f.Value), "", "L", fill)
		y = pdf.GetY()
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by Concierge", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, time.Now().Format("Jan 2, 2006 15:04 MST"), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

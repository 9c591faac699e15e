package render

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

// A4 portrait, in points.
const (
	pageTop    = 40.0
	pageLeft   = 40.0
	pageRight  = 555.0
	pageBottom = 780.0
	rowHeight  = 20.0
	infoRows   = 5
	infoColGap = 250.0
	infoValueX = 85.0
)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) Extension() string {
	return "pdf"
}

// Render lays the document out like the printed timesheet: title block,
// two column info pairs, the day table and the summary.
func (r *PDFRenderer) Render(doc report.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pageLeft, pageTop, tr(doc.Title))
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(pageLeft, pageTop+20, tr(doc.Subtitle))
	}

	y := pageTop + 60
	for i, p := range doc.Info {
		x := pageLeft + float64(i/infoRows)*infoColGap
		py := y + float64(i%infoRows)*rowHeight
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(x, py, tr(p.Label+":"))
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(x+infoValueX, py, tr(p.Value))
	}
	if len(doc.Info) > 0 {
		y += float64(min(len(doc.Info), infoRows)) * rowHeight
	}

	pdf.Line(pageLeft, y, pageRight, y)
	y += rowHeight

	widths := columnWidths(len(doc.Header))
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 0, 0)
		x := pageLeft
		for i, h := range doc.Header {
			pdf.Text(x, y, tr(h))
			x += widths[i]
		}
		pdf.Line(pageLeft, y+10, pageRight, y+10)
		y += rowHeight + 10
	}

	if len(doc.Header) > 0 {
		drawHeader()
	}

	if len(doc.Rows) == 0 && doc.Empty != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Text(pageLeft, y, tr(doc.Empty))
		y += rowHeight
	}

	for _, row := range doc.Rows {
		if y > pageBottom-rowHeight {
			pdf.AddPage()
			y = pageTop
			drawHeader()
		}

		c := toneColor(row.Tone)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.SetFont("Helvetica", "", 10)

		x := pageLeft
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			pdf.Text(x, y, fit(pdf, tr(cell), widths[i]-4))
			x += widths[i]
		}
		y += rowHeight
	}
	pdf.SetTextColor(0, 0, 0)

	if len(doc.Summary) > 0 {
		if y > pageBottom-float64(len(doc.Summary)+2)*rowHeight {
			pdf.AddPage()
			y = pageTop
		}
		pdf.Line(pageLeft, y-10, pageRight, y-10)
		y += 10
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(pageLeft, y, tr(doc.SummaryTitle))
		y += rowHeight

		for _, p := range doc.Summary {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Text(pageLeft, y, tr(p.Label+":"))
			pdf.SetFont("Helvetica", "", 10)
			pdf.Text(pageLeft+100, y, tr(p.Value))
			y += rowHeight
		}
	}

	if doc.Footer != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.Text(pageLeft, pageBottom+30, tr(doc.Footer))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths splits the page width evenly, giving the last column twice
// the room since it holds free text.
func columnWidths(n int) []float64 {
	if n == 0 {
		return nil
	}
	unit := (pageRight - pageLeft) / float64(n+1)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = unit
	}
	widths[n-1] = 2 * unit
	return widths
}

// fit trims s until it fits in width at the current font.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

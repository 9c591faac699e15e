package render

import (
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Espelho de Ponto"

type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) Extension() string {
	return "xlsx"
}

// Render writes the document to a single sheet, one table row per row.
func (r *XLSXRenderer) Render(doc report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	cols := max(len(doc.Header), 2)
	lastCol, _ := excelize.ColumnNumberToName(cols)

	w := &sheetWriter{f: f, row: 1}

	w.set(1, doc.Title)
	w.merge("A1", lastCol+"1")
	w.style(1, cols, styles.title)
	w.row++

	if doc.Subtitle != "" {
		w.set(1, doc.Subtitle)
		w.style(1, 1, styles.bold)
		w.row++
	}
	w.row++

	for _, p := range doc.Info {
		w.set(1, p.Label)
		w.set(2, p.Value)
		w.style(1, 1, styles.bold)
		w.row++
	}
	w.row++

	if len(doc.Header) > 0 {
		for i, h := range doc.Header {
			w.set(i+1, h)
		}
		w.style(1, cols, styles.header)
		w.row++
	}

	if len(doc.Rows) == 0 && doc.Empty != "" {
		w.set(1, doc.Empty)
		w.row++
	}

	for _, row := range doc.Rows {
		for i, cell := range row.Cells {
			w.set(i+1, cell)
		}
		if style, ok := styles.tones[row.Tone]; ok {
			w.style(1, len(row.Cells), style)
		}
		w.row++
	}
	w.row++

	if len(doc.Summary) > 0 {
		w.set(1, doc.SummaryTitle)
		w.style(1, 1, styles.bold)
		w.row++
		for _, p := range doc.Summary {
			w.set(1, p.Label)
			w.set(2, p.Value)
			w.row++
		}
		w.row++
	}

	if doc.Footer != "" {
		w.set(1, doc.Footer)
	}

	if w.err != nil {
		return nil, fmt.Errorf("failed to write sheet: %w", w.err)
	}

	if err := f.SetColWidth(sheetName, "A", "A", 18); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if cols > 1 {
		if err := f.SetColWidth(sheetName, "B", lastCol, 12); err != nil {
			return nil, fmt.Errorf("failed to size columns: %w", err)
		}
	}
	if err := f.SetColWidth(sheetName, lastCol, lastCol, 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title  int
	header int
	bold   int
	tones  map[report.Tone]int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var (
		s   sheetStyles
		err error
	)

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}

	if s.bold, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return s, fmt.Errorf("failed to create style: %w", err)
	}

	s.tones = make(map[report.Tone]int, len(toneColors))
	for tone, c := range toneColors {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: fmt.Sprintf("#%02X%02X%02X", c.r, c.g, c.b)},
		})
		if err != nil {
			return s, fmt.Errorf("failed to create style: %w", err)
		}
		s.tones[tone] = id
	}

	return s, nil
}

// sheetWriter keeps the current row and the first error, so the layout
// code above reads top to bottom.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) set(col int, value string) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStr(sheetName, cell, value)
}

func (w *sheetWriter) style(fromCol, toCol, style int) {
	if w.err != nil || toCol < fromCol {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, w.row)
	if err != nil {
		w.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheetName, from, to, style)
}

func (w *sheetWriter) merge(from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.MergeCell(sheetName, from, to)
}

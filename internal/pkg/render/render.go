// Package render turns report documents into downloadable files.
package render

import "github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"

type rgb struct{ r, g, b int }

var toneColors = map[report.Tone]rgb{
	report.ToneSunday:  {255, 0, 0},
	report.ToneHoliday: {255, 0, 0},
	report.ToneDayOff:  {0, 0, 255},
}

func toneColor(t report.Tone) rgb {
	if c, ok := toneColors[t]; ok {
		return c
	}
	return rgb{0, 0, 0}
}

// ForFormat returns the renderer for an export format, or nil.
func ForFormat(format string) report.Renderer {
	switch format {
	case report.FormatPDF:
		return NewPDFRenderer()
	case report.FormatXLSX:
		return NewXLSXRenderer()
	}
	return nil
}

package render

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDocument(rows int) report.Document {
	doc := report.Document{
		Title:    "ESPELHO DE PONTO",
		Subtitle: "Relatório Mensal de Ponto",
		Info: []report.Pair{
			{Label: "Funcionário", Value: "João Conceição"},
			{Label: "Setor", Value: "Não informado"},
			{Label: "Mês", Value: "Março"},
		},
		Header:       []string{"Data", "Dia", "Entrada", "Intervalo", "Retorno", "Saída", "Total", "Obs."},
		Empty:        report.NoRecordsMessage,
		SummaryTitle: "Resumo Mensal",
		Summary: []report.Pair{
			{Label: "Total do mês", Value: "08:00"},
			{Label: "Dias Trabalhados", Value: "1"},
			{Label: "Média diária", Value: "08:00"},
		},
		Footer: "Gerado em: 15/05/2024 às 10:00:00",
	}
	tones := []report.Tone{report.ToneNormal, report.ToneSunday, report.ToneHoliday, report.ToneDayOff}
	for i := 0; i < rows; i++ {
		doc.Rows = append(doc.Rows, report.Row{
			Cells: []string{"01/03", "Sex", "08:00", "12:00", "13:00", "17:00", "08:00", "Confraternização Universal e mais texto"},
			Tone:  tones[i%len(tones)],
		})
	}
	return doc
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	assert.Equal(t, "pdf", r.Extension())
	assert.Equal(t, "application/pdf", r.ContentType())

	out, err := r.Render(sampleDocument(31))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	// 31 rows do not fit on one page.
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page\n")), 2)
}

func TestPDFRenderer_Empty(t *testing.T) {
	doc := sampleDocument(0)
	doc.Summary = nil

	out, err := NewPDFRenderer().Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestXLSXRenderer(t *testing.T) {
	r := NewXLSXRenderer()
	assert.Equal(t, "xlsx", r.Extension())

	out, err := r.Render(sampleDocument(3))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	var texts []string
	for _, row := range rows {
		if len(row) > 0 {
			texts = append(texts, row[0])
		}
	}
	assert.Equal(t, "ESPELHO DE PONTO", texts[0])
	assert.Contains(t, texts, "Funcionário")
	assert.Contains(t, texts, "Data")
	assert.Contains(t, texts, "Resumo Mensal")
	assert.Contains(t, texts, "Gerado em: 15/05/2024 às 10:00:00")

	var found bool
	for _, row := range rows {
		if len(row) == 8 && row[0] == "01/03" {
			found = true
			assert.Equal(t, "17:00", row[5])
		}
	}
	assert.True(t, found, "day rows are written")
}

func TestXLSXRenderer_Empty(t *testing.T) {
	out, err := NewXLSXRenderer().Render(sampleDocument(0))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	var found bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == report.NoRecordsMessage {
			found = true
		}
	}
	assert.True(t, found)
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &PDFRenderer{}, ForFormat(report.FormatPDF))
	assert.IsType(t, &XLSXRenderer{}, ForFormat(report.FormatXLSX))
	assert.Nil(t, ForFormat("csv"))
}

package report

// Tone is how a document row should stand out.
type Tone string

const (
	ToneNormal  Tone = "normal"
	ToneSunday  Tone = "sunday"
	ToneHoliday Tone = "holiday"
	ToneDayOff  Tone = "day_off"
)

type Pair struct {
	Label string
	Value string
}

type Row struct {
	Cells []string
	Tone  Tone
}

// Document is the renderer independent form of an exported report.
type Document struct {
	Title    string
	Subtitle string
	Info     []Pair
	Header   []string
	Rows     []Row
	// Empty is printed instead of the table when there are no rows.
	Empty        string
	SummaryTitle string
	Summary      []Pair
	Footer       string
}

// Renderer turns a Document into a file.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}

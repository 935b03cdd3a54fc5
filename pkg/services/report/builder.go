package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

// Page geometry in mm (A4, portrait).
const (
	pageWidth    = 210.0
	marginLeft   = 20.0
	marginTop    = 20.0
	marginBottom = 25.0
	usableWidth  = pageWidth - 2*marginLeft
	breakAtY     = 297.0 - marginBottom - 5
)

var (
	colorHeaderFill = [3]int{30, 58, 95}
	colorRowAlt     = [3]int{241, 245, 249}
	colorBoxFill    = [3]int{248, 249, 250}
	colorTextDark   = [3]int{44, 62, 80}
	colorTextMuted  = [3]int{127, 140, 141}
	colorGrid       = [3]int{200, 200, 200}
)

// Builder accumulates document blocks and lays them out into a
// paginated A4 PDF. A builder is single-use: create, add blocks, Save.
// Temporary chart images rendered along the way are owned by the
// builder and removed when it finalizes, on every exit path. Callers
// that may abandon a builder without saving should defer Close.
type Builder struct {
	pdf      *fpdf.Fpdf
	renderer *ChartRenderer
	tr       func(string) string
	outPath  string
	temps    []string
	saved    bool
}

// NewBuilder creates a document builder writing to outPath. Chart
// sections are rendered through renderer.
func NewBuilder(outPath string, renderer *ChartRenderer) *Builder {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(true, marginBottom)

	return &Builder{
		pdf:      pdf,
		renderer: renderer,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		outPath:  outPath,
	}
}

// AddCover emits a cover page: optional logo (silently skipped when
// the file does not exist), the title, a generation timestamp and an
// optional boxed summary, followed by a page break so content starts
// on a fresh page.
func (b *Builder) AddCover(title, logoPath, summary string) error {
	if b.saved {
		return ErrAlreadyFinalized
	}

	b.pdf.AddPage()

	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			b.pdf.ImageOptions(logoPath, (pageWidth-40)/2, 30, 40, 0, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	b.pdf.SetY(95)
	b.pdf.SetFont("Helvetica", "B", 26)
	b.pdf.SetTextColor(colorHeaderFill[0], colorHeaderFill[1], colorHeaderFill[2])
	b.pdf.CellFormat(0, 14, b.tr(title), "", 1, "C", false, 0, "")

	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	generated := fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05"))
	b.pdf.CellFormat(0, 8, generated, "", 1, "C", false, 0, "")

	if summary != "" {
		b.pdf.SetY(135)
		b.pdf.SetFont("Helvetica", "", 11)
		b.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		b.pdf.SetFillColor(colorBoxFill[0], colorBoxFill[1], colorBoxFill[2])
		b.pdf.SetDrawColor(colorGrid[0], colorGrid[1], colorGrid[2])
		b.pdf.SetX(marginLeft + 15)
		b.pdf.MultiCell(usableWidth-30, 7, b.tr(summary), "1", "L", true)
	}

	b.pdf.AddPage()
	return nil
}

// AddSection appends one content block, dispatching on the section
// type. Unknown types degrade to a visible placeholder and failures
// inside a chart section degrade to an error-text block; neither
// aborts the document.
func (b *Builder) AddSection(section domain.Section) error {
	if b.saved {
		return ErrAlreadyFinalized
	}
	b.ensurePage()

	if section.Title != "" {
		b.pdf.SetFont("Helvetica", "B", 13)
		b.pdf.SetTextColor(colorHeaderFill[0], colorHeaderFill[1], colorHeaderFill[2])
		b.pdf.CellFormat(0, 9, b.tr(section.Title), "", 1, "L", false, 0, "")
		b.pdf.Ln(1)
	}

	switch section.Type {
	case domain.SectionParagraph:
		b.pdf.SetFont("Helvetica", "", 11)
		b.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		b.pdf.MultiCell(usableWidth, 6, b.tr(section.Text), "", "L", false)
	case domain.SectionTable:
		b.writeTable(FormatTable(section.Data))
	case domain.SectionChart:
		for _, spec := range section.Charts {
			b.writeChart(spec)
		}
	default:
		b.writeNotice(fmt.Sprintf("Unsupported section type: %s", section.Type))
	}

	b.pdf.Ln(6)
	return nil
}

// Save lays out the document, writes the output file and removes every
// temporary chart image, then returns the resolved absolute path.
// Cleanup happens whether or not the write succeeds. Save is terminal.
func (b *Builder) Save() (string, error) {
	if b.saved {
		return "", ErrAlreadyFinalized
	}
	b.saved = true
	defer b.cleanup()

	b.ensurePage()

	if dir := filepath.Dir(b.outPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := b.pdf.OutputFileAndClose(b.outPath); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	abs, err := filepath.Abs(b.outPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	return abs, nil
}

// Close releases the builder without saving. It is a no-op after a
// successful Save, so callers can defer it unconditionally.
func (b *Builder) Close() error {
	if !b.saved {
		b.saved = true
		b.pdf.Close()
	}
	b.cleanup()
	return nil
}

func (b *Builder) cleanup() {
	for _, path := range b.temps {
		_ = os.Remove(path)
	}
	b.temps = nil
}

func (b *Builder) ensurePage() {
	if b.pdf.PageNo() == 0 {
		b.pdf.AddPage()
	}
}

func (b *Builder) writeChart(spec domain.ChartSpec) {
	path, err := b.renderer.Render(spec)
	if err != nil {
		b.writeNotice(fmt.Sprintf("Chart could not be rendered: %v", err))
		return
	}
	b.temps = append(b.temps, path)

	const imageWidth = 150.0
	b.pdf.Ln(2)
	b.pdf.ImageOptions(path, (pageWidth-imageWidth)/2, -1, imageWidth, 0, true,
		fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	b.pdf.Ln(2)
}

// writeNotice renders a muted italic block, used for unsupported
// section types and degraded chart sections.
func (b *Builder) writeNotice(text string) {
	b.pdf.SetFont("Helvetica", "I", 11)
	b.pdf.SetTextColor(colorTextMuted[0], colorTextMuted[1], colorTextMuted[2])
	b.pdf.MultiCell(usableWidth, 6, b.tr(text), "", "L", false)
}

func (b *Builder) writeTable(layout domain.TableLayout) {
	widths := columnWidths(layout.Columns)
	for i, row := range layout.Rows {
		b.writeTableRow(row, layout.Styles[i], widths)
	}
}

func columnWidths(columns int) []float64 {
	if columns == 2 {
		return []float64{60, usableWidth - 60}
	}
	if columns < 1 {
		columns = 1
	}
	widths := make([]float64, columns)
	for i := range widths {
		widths[i] = usableWidth / float64(columns)
	}
	return widths
}

func (b *Builder) writeTableRow(cells []string, style domain.RowStyle, widths []float64) {
	const lineHeight = 5.5

	b.pdf.SetFont("Helvetica", "", 10)
	wrapped := make([][]string, len(cells))
	maxLines := 1
	for i, cell := range cells {
		w := widths[i%len(widths)]
		wrapped[i] = b.pdf.SplitText(b.tr(cell), w-4)
		if len(wrapped[i]) == 0 {
			wrapped[i] = []string{""}
		}
		if len(wrapped[i]) > maxLines {
			maxLines = len(wrapped[i])
		}
	}
	rowHeight := lineHeight*float64(maxLines) + 2

	if b.pdf.GetY()+rowHeight > breakAtY {
		b.pdf.AddPage()
	}

	fill := style.Header || style.Shaded
	if style.Header {
		b.pdf.SetFillColor(colorHeaderFill[0], colorHeaderFill[1], colorHeaderFill[2])
	} else {
		b.pdf.SetFillColor(colorRowAlt[0], colorRowAlt[1], colorRowAlt[2])
	}
	b.pdf.SetDrawColor(colorGrid[0], colorGrid[1], colorGrid[2])

	x := marginLeft
	y := b.pdf.GetY()
	for i, lines := range wrapped {
		w := widths[i%len(widths)]

		mode := "D"
		if fill {
			mode = "DF"
		}
		b.pdf.Rect(x, y, w, rowHeight, mode)

		switch {
		case style.Header:
			b.pdf.SetFont("Helvetica", "B", 10)
			b.pdf.SetTextColor(255, 255, 255)
		case style.Emphasis && i > 0:
			// Grand-total style values stand out.
			b.pdf.SetFont("Helvetica", "B", 10)
			b.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		default:
			b.pdf.SetFont("Helvetica", "", 10)
			b.pdf.SetTextColor(colorTextDark[0], colorTextDark[1], colorTextDark[2])
		}

		for j, line := range lines {
			b.pdf.SetXY(x+2, y+1+lineHeight*float64(j))
			b.pdf.CellFormat(w-4, lineHeight, line, "", 0, "L", false, 0, "")
		}
		x += w
	}
	b.pdf.SetXY(marginLeft, y+rowHeight)
}

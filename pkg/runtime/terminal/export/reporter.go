package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

// Reporter outputs tool results to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) HandleSummary(summary *domain.CSVSummary) error {
	tmpl := `
CSV summary: {{.RowCount}} rows, {{.ColumnCount}} columns
{{range .Columns}}
- {{.Name}} ({{.InferredType}}){{if .MissingValues}}, {{.MissingValues}} missing{{end}}
{{- end}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, summary)
}

func (r *Reporter) HandleRows(rows []map[string]any) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(r.writer, "no rows")
		return err
	}

	tmpl := `{{range $i, $row := .}}--- row {{$i}} ---
{{range $key, $value := $row}}{{$key}}: {{$value}}
{{end}}{{end}}`
	t, err := template.New("rows").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, rows)
}

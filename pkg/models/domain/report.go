package domain

// Field is one key/value pair of a JSON object. Payloads keep their
// fields as ordered slices rather than maps so that report output is
// deterministic and follows the order the caller wrote.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered JSON object.
type Fields []Field

// Get returns the value for key and whether it is present.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// PayloadKind discriminates the two report payload shapes.
type PayloadKind string

const (
	// PayloadFlat is a plain key/value mapping rendered as one table
	// with an optional auto-generated chart.
	PayloadFlat PayloadKind = "flat"
	// PayloadStructured is a payload that explicitly provides
	// title/summary/insights/sections.
	PayloadStructured PayloadKind = "structured"
)

// Payload is the report input, classified once at the boundary.
// Exactly one of Flat or Structured is set, according to Kind.
type Payload struct {
	Kind       PayloadKind
	Flat       Fields
	Structured *StructuredPayload
}

// IsEmpty reports whether the payload has no content to report.
func (p Payload) IsEmpty() bool {
	switch p.Kind {
	case PayloadStructured:
		return p.Structured == nil ||
			(len(p.Structured.Sections) == 0 && len(p.Structured.Insights) == 0)
	default:
		return len(p.Flat) == 0
	}
}

// StructuredPayload is the multi-section report shape.
type StructuredPayload struct {
	Title    string
	Summary  string
	Insights []string
	Cover    *Cover
	Sections []Section
}

// Cover holds cover-page options supplied by the caller.
type Cover struct {
	LogoPath string
}

// Section types understood by the document builder. Anything else is
// rendered as a visible placeholder instead of failing the document.
const (
	SectionParagraph = "paragraph"
	SectionTable     = "table"
	SectionChart     = "chart"
)

// Section is one titled content block within the document body.
type Section struct {
	Title string
	Type  string

	// Text is set for paragraph sections.
	Text string
	// Data is set for table sections: Fields or a []any of Fields.
	Data any
	// Charts is set for chart sections; a single spec arrives as a
	// one-element slice.
	Charts []ChartSpec
}

// Chart types supported by the renderer.
const (
	ChartBar  = "bar"
	ChartPie  = "pie"
	ChartLine = "line"
)

// ChartSpec describes one chart image: type, parallel label/value
// sequences and optional styling.
type ChartSpec struct {
	Type   string
	Labels []string
	Values []float64
	Color  string
	Width  int
	Height int
}

// ReportOptions carries the per-call knobs of report creation.
type ReportOptions struct {
	// OutputPath overrides the default timestamped location.
	OutputPath string
	// IncludeChart enables the auto-generated bar chart for flat
	// payloads. It has no effect on structured payloads.
	IncludeChart bool
}

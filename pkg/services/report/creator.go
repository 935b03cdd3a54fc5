package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

const defaultTitle = "Data Assistant Report"

// minimum number of numeric fields before a flat payload gets an
// auto-generated bar chart
const autoChartThreshold = 3

// Config holds construction-time settings of a Creator. Multiple
// creators with different output roots can coexist.
type Config struct {
	// OutputDir receives default-named reports. Created on demand.
	OutputDir string
	// LogoPath is the bundled logo used when the payload supplies
	// none. Its absence is never an error.
	LogoPath string
	// TmpDir overrides where intermediate chart images are written.
	TmpDir string
}

// Creator is the report generation entry point: it classifies the
// payload shape, drives a document builder accordingly and returns the
// absolute path of the produced PDF.
type Creator struct {
	cfg Config
}

// NewCreator creates a report creator. Zero-value config fields fall
// back to "reports" and "assets/logo.png".
func NewCreator(cfg Config) *Creator {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "reports"
	}
	if cfg.LogoPath == "" {
		cfg.LogoPath = filepath.Join("assets", "logo.png")
	}
	return &Creator{cfg: cfg}
}

// CreateReport builds a PDF document from payload and returns its
// absolute path. Flat payloads render as one field/value table plus an
// optional auto-generated bar chart; structured payloads render their
// sections in order behind a cover page.
func (c *Creator) CreateReport(
	ctx context.Context,
	payload domain.Payload,
	opts domain.ReportOptions,
) (string, error) {
	logger := zerolog.Ctx(ctx)

	if payload.IsEmpty() {
		return "", ErrEmptyPayload
	}

	outPath, err := c.resolveOutputPath(opts.OutputPath)
	if err != nil {
		return "", err
	}

	builder := NewBuilder(outPath, NewChartRenderer(c.cfg.TmpDir))
	defer builder.Close()

	switch payload.Kind {
	case domain.PayloadStructured:
		err = c.buildStructured(builder, payload.Structured)
	default:
		err = c.buildFlat(builder, payload.Flat, opts.IncludeChart)
	}
	if err != nil {
		return "", err
	}

	path, err := builder.Save()
	if err != nil {
		return "", err
	}

	logger.Info().
		Str("path", path).
		Str("shape", string(payload.Kind)).
		Msg("report created")
	return path, nil
}

func (c *Creator) buildStructured(builder *Builder, payload *domain.StructuredPayload) error {
	title := payload.Title
	if title == "" {
		title = defaultTitle
	}

	logo := c.defaultLogo()
	if payload.Cover != nil && payload.Cover.LogoPath != "" {
		logo = payload.Cover.LogoPath
	}

	if err := builder.AddCover(title, logo, payload.Summary); err != nil {
		return err
	}
	for _, insight := range payload.Insights {
		err := builder.AddSection(domain.Section{Type: domain.SectionParagraph, Text: insight})
		if err != nil {
			return err
		}
	}
	for _, section := range payload.Sections {
		if err := builder.AddSection(section); err != nil {
			return err
		}
	}
	return nil
}

func (c *Creator) buildFlat(builder *Builder, fields domain.Fields, includeChart bool) error {
	if err := builder.AddCover(defaultTitle, c.defaultLogo(), ""); err != nil {
		return err
	}
	err := builder.AddSection(domain.Section{
		Title: "Data",
		Type:  domain.SectionTable,
		Data:  fields,
	})
	if err != nil {
		return err
	}

	if !includeChart {
		return nil
	}
	spec, ok := autoChartSpec(fields)
	if !ok {
		return nil
	}
	return builder.AddSection(domain.Section{
		Title:  "Chart",
		Type:   domain.SectionChart,
		Charts: []domain.ChartSpec{spec},
	})
}

// autoChartSpec derives a bar chart from the payload's numeric fields.
// It needs at least three of them; zero-valued fields are dropped
// unless dropping them would leave no bars at all.
func autoChartSpec(fields domain.Fields) (domain.ChartSpec, bool) {
	var labels []string
	var values []float64
	for _, field := range fields {
		if v, ok := numericValue(field.Value); ok {
			labels = append(labels, field.Key)
			values = append(values, v)
		}
	}
	if len(values) < autoChartThreshold {
		return domain.ChartSpec{}, false
	}

	var nzLabels []string
	var nzValues []float64
	for i, v := range values {
		if v != 0 {
			nzLabels = append(nzLabels, labels[i])
			nzValues = append(nzValues, v)
		}
	}
	if len(nzValues) > 0 {
		labels, values = nzLabels, nzValues
	}

	return domain.ChartSpec{
		Type:   domain.ChartBar,
		Labels: labels,
		Values: values,
	}, true
}

func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func (c *Creator) defaultLogo() string {
	if _, err := os.Stat(c.cfg.LogoPath); err == nil {
		return c.cfg.LogoPath
	}
	return ""
}

// resolveOutputPath picks the destination file. Default names carry a
// second-granularity timestamp plus a random suffix so that two calls
// landing in the same second cannot collide.
func (c *Creator) resolveOutputPath(requested string) (string, error) {
	if requested != "" {
		if dir := filepath.Dir(requested); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		return requested, nil
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	name := fmt.Sprintf("report-%s-%s.pdf",
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8])
	return filepath.Join(c.cfg.OutputDir, name), nil
}

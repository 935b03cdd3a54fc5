package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

func newTestCreator(t *testing.T) (*Creator, string) {
	t.Helper()
	tmpDir := t.TempDir()
	creator := NewCreator(Config{
		OutputDir: filepath.Join(tmpDir, "reports"),
		LogoPath:  filepath.Join(tmpDir, "missing-logo.png"),
		TmpDir:    tmpDir,
	})
	return creator, tmpDir
}

func flatPayload(fields domain.Fields) domain.Payload {
	return domain.Payload{Kind: domain.PayloadFlat, Flat: fields}
}

func TestCreateReport_EmptyPayload(t *testing.T) {
	creator, _ := newTestCreator(t)

	_, err := creator.CreateReport(context.Background(), flatPayload(nil), domain.ReportOptions{IncludeChart: true})
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = creator.CreateReport(context.Background(), domain.Payload{
		Kind:       domain.PayloadStructured,
		Structured: &domain.StructuredPayload{Title: "only a title"},
	}, domain.ReportOptions{})
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestCreateReport_FlatFewNumericFieldsGetsNoChart(t *testing.T) {
	creator, _ := newTestCreator(t)

	path, err := creator.CreateReport(context.Background(), flatPayload(domain.Fields{
		{Key: "company", Value: "ACME"},
		{Key: "revenue", Value: float64(1000)},
	}), domain.ReportOptions{IncludeChart: true})
	require.NoError(t, err)

	assert.Equal(t, 0, countPDFImages(t, path))
}

func TestCreateReport_FlatAutoChart(t *testing.T) {
	creator, _ := newTestCreator(t)

	path, err := creator.CreateReport(context.Background(), flatPayload(domain.Fields{
		{Key: "company", Value: "ACME"},
		{Key: "q1", Value: float64(100)},
		{Key: "q2", Value: float64(150)},
		{Key: "q3", Value: float64(210)},
	}), domain.ReportOptions{IncludeChart: true})
	require.NoError(t, err)

	assert.Equal(t, 1, countPDFImages(t, path))
}

func TestCreateReport_ChartDisabled(t *testing.T) {
	creator, _ := newTestCreator(t)

	path, err := creator.CreateReport(context.Background(), flatPayload(domain.Fields{
		{Key: "q1", Value: float64(100)},
		{Key: "q2", Value: float64(150)},
		{Key: "q3", Value: float64(210)},
	}), domain.ReportOptions{IncludeChart: false})
	require.NoError(t, err)

	assert.Equal(t, 0, countPDFImages(t, path))
}

func TestCreateReport_DefaultOutputPath(t *testing.T) {
	creator, tmpDir := newTestCreator(t)

	path, err := creator.CreateReport(context.Background(), flatPayload(domain.Fields{
		{Key: "note", Value: "hello"},
	}), domain.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "reports"), filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "report-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCreateReport_DefaultPathsDoNotCollide(t *testing.T) {
	creator, _ := newTestCreator(t)
	payload := flatPayload(domain.Fields{{Key: "note", Value: "hello"}})

	first, err := creator.CreateReport(context.Background(), payload, domain.ReportOptions{})
	require.NoError(t, err)
	second, err := creator.CreateReport(context.Background(), payload, domain.ReportOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCreateReport_RequestedOutputPath(t *testing.T) {
	creator, tmpDir := newTestCreator(t)
	requested := filepath.Join(tmpDir, "nested", "dir", "my-report.pdf")

	path, err := creator.CreateReport(context.Background(), flatPayload(domain.Fields{
		{Key: "note", Value: "hello"},
	}), domain.ReportOptions{OutputPath: requested})
	require.NoError(t, err)

	assert.Equal(t, requested, path)
	_, err = os.Stat(requested)
	assert.NoError(t, err)
}

func TestCreateReport_StructuredSections(t *testing.T) {
	creator, _ := newTestCreator(t)

	path, err := creator.CreateReport(context.Background(), domain.Payload{
		Kind: domain.PayloadStructured,
		Structured: &domain.StructuredPayload{
			Title:    "Quarterly Report",
			Summary:  "Everything in one place.",
			Insights: []string{"Sales grew", "Costs fell"},
			Sections: []domain.Section{
				{Title: "Intro", Type: domain.SectionParagraph, Text: "Welcome."},
				{Title: "Numbers", Type: domain.SectionTable, Data: domain.Fields{{Key: "total", Value: 7}}},
				{Title: "Split", Type: domain.SectionChart, Charts: []domain.ChartSpec{
					{Type: domain.ChartPie, Labels: []string{"a", "b"}, Values: []float64{60, 40}},
					{Type: domain.ChartLine, Labels: []string{"jan", "feb"}, Values: []float64{1, 2}},
				}},
			},
		},
	}, domain.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, countPDFImages(t, path))
	assert.GreaterOrEqual(t, countPDFPages(t, path), 2)
}

func TestCreateReport_NoTempFilesLeftBehind(t *testing.T) {
	creator, tmpDir := newTestCreator(t)

	_, err := creator.CreateReport(context.Background(), flatPayload(domain.Fields{
		{Key: "q1", Value: float64(100)},
		{Key: "q2", Value: float64(150)},
		{Key: "q3", Value: float64(210)},
	}), domain.ReportOptions{IncludeChart: true})
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(tmpDir, "chart-*.png"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAutoChartSpec(t *testing.T) {
	t.Run("below threshold", func(t *testing.T) {
		_, ok := autoChartSpec(domain.Fields{
			{Key: "a", Value: 1},
			{Key: "b", Value: 2},
			{Key: "name", Value: "x"},
		})
		assert.False(t, ok)
	})

	t.Run("zero values pruned", func(t *testing.T) {
		spec, ok := autoChartSpec(domain.Fields{
			{Key: "a", Value: float64(10)},
			{Key: "b", Value: float64(0)},
			{Key: "c", Value: float64(20)},
		})
		require.True(t, ok)
		assert.Equal(t, []string{"a", "c"}, spec.Labels)
		assert.Equal(t, []float64{10, 20}, spec.Values)
	})

	t.Run("all zeros kept", func(t *testing.T) {
		spec, ok := autoChartSpec(domain.Fields{
			{Key: "a", Value: float64(0)},
			{Key: "b", Value: float64(0)},
			{Key: "c", Value: float64(0)},
		})
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b", "c"}, spec.Labels)
	})

	t.Run("non numeric ignored", func(t *testing.T) {
		spec, ok := autoChartSpec(domain.Fields{
			{Key: "name", Value: "ACME"},
			{Key: "q1", Value: float64(1)},
			{Key: "q2", Value: int(2)},
			{Key: "q3", Value: int64(3)},
		})
		require.True(t, ok)
		assert.Equal(t, []string{"q1", "q2", "q3"}, spec.Labels)
		assert.Equal(t, domain.ChartBar, spec.Type)
	})
}

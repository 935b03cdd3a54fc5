// Package csvsummary analyses CSV files and reports basic statistics:
// row/column counts and per-column inferred type plus missing-value
// count.
package csvsummary

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

// MaxRows caps how large a file the tool will analyse.
const MaxRows = 1_000_000

// Summarise reads the CSV file at path and returns its summary. The
// file must exist and carry a .csv extension (case-insensitive).
func Summarise(path string) (*domain.CSVSummary, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fmt.Errorf("only CSV files are supported")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	stats := make([]columnStats, len(header))
	rowCount := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rowCount+1, err)
		}
		rowCount++
		if rowCount > MaxRows {
			return nil, fmt.Errorf("CSV too large (more than %d rows)", MaxRows)
		}
		for i := range header {
			if i >= len(record) || record[i] == "" {
				stats[i].missing++
				continue
			}
			stats[i].observe(record[i])
		}
	}

	summary := &domain.CSVSummary{
		RowCount:    rowCount,
		ColumnCount: len(header),
	}
	for i, name := range header {
		summary.Columns = append(summary.Columns, domain.CSVColumn{
			Name:          name,
			InferredType:  stats[i].inferredType(),
			MissingValues: stats[i].missing,
		})
	}
	return summary, nil
}

type columnStats struct {
	seen     int
	missing  int
	nonInt   bool
	nonFloat bool
	nonBool  bool
}

func (c *columnStats) observe(value string) {
	c.seen++
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		c.nonInt = true
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		c.nonFloat = true
	}
	switch strings.ToLower(value) {
	case "true", "false":
	default:
		c.nonBool = true
	}
}

func (c *columnStats) inferredType() string {
	switch {
	case c.seen == 0:
		return "empty"
	case !c.nonInt:
		return "integer"
	case !c.nonFloat:
		return "float"
	case !c.nonBool:
		return "boolean"
	default:
		return "string"
	}
}

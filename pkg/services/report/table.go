package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

// FormatTable turns table data into a resolved layout with styling
// metadata attached. It accepts an ordered mapping (domain.Fields), a
// list of records, or a plain Go map (sorted by key for determinism),
// and never produces a structurally empty table: when there is nothing
// to show it emits a single "No data" placeholder row.
func FormatTable(data any) domain.TableLayout {
	switch v := data.(type) {
	case domain.Fields:
		return formatFields(v)
	case []any:
		return formatRecords(v)
	case []domain.Fields:
		items := make([]any, len(v))
		for i, rec := range v {
			items[i] = rec
		}
		return formatRecords(items)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make(domain.Fields, 0, len(v))
		for _, k := range keys {
			fields = append(fields, domain.Field{Key: k, Value: v[k]})
		}
		return formatFields(fields)
	case nil:
		return placeholderLayout()
	default:
		return formatFields(domain.Fields{{Key: "value", Value: v}})
	}
}

// formatFields renders an ordered mapping as a two-column field/value
// table. A mapping that carries a "title" plus a non-empty "data" list
// of records is a named list of structured items: the title becomes
// its own row, every record is flattened into successive rows, and any
// remaining top-level keys trail behind.
func formatFields(fields domain.Fields) domain.TableLayout {
	if len(fields) == 0 {
		return placeholderLayout()
	}

	layout := domain.TableLayout{Columns: 2}

	titleVal, hasTitle := fields.Get("title")
	dataVal, hasData := fields.Get("data")
	if records, ok := recordList(dataVal); hasTitle && hasData && ok {
		layout.Rows = append(layout.Rows, []string{renderValue(titleVal), ""})
		layout.Styles = append(layout.Styles, domain.RowStyle{Header: true})
		for _, record := range records {
			for _, field := range record {
				appendDataRow(&layout, field.Key, renderValue(field.Value))
			}
		}
		for _, field := range fields {
			if field.Key == "title" || field.Key == "data" {
				continue
			}
			appendDataRow(&layout, field.Key, renderValue(field.Value))
		}
		return layout
	}

	for _, field := range fields {
		appendDataRow(&layout, field.Key, renderValue(field.Value))
	}
	return layout
}

// formatRecords renders a list of records with a fixed header: the
// sorted union of all record keys, one row per record, empty string
// for absent keys.
func formatRecords(items []any) domain.TableLayout {
	var records []domain.Fields
	for _, item := range items {
		if record, ok := item.(domain.Fields); ok {
			records = append(records, record)
			continue
		}
		// A non-mapping list item still deserves a row.
		records = append(records, domain.Fields{{Key: "value", Value: item}})
	}
	if len(records) == 0 {
		return placeholderLayout()
	}

	seen := map[string]bool{}
	var header []string
	for _, record := range records {
		for _, field := range record {
			if !seen[field.Key] {
				seen[field.Key] = true
				header = append(header, field.Key)
			}
		}
	}
	sort.Strings(header)

	layout := domain.TableLayout{Columns: len(header)}
	layout.Rows = append(layout.Rows, header)
	layout.Styles = append(layout.Styles, domain.RowStyle{Header: true})

	for i, record := range records {
		row := make([]string, len(header))
		for j, key := range header {
			if v, ok := record.Get(key); ok {
				row[j] = renderValue(v)
			}
		}
		layout.Rows = append(layout.Rows, row)
		layout.Styles = append(layout.Styles, domain.RowStyle{Shaded: i%2 == 1})
	}
	return layout
}

func appendDataRow(layout *domain.TableLayout, key, value string) {
	dataRows := 0
	for _, style := range layout.Styles {
		if !style.Header {
			dataRows++
		}
	}
	layout.Rows = append(layout.Rows, []string{key, value})
	layout.Styles = append(layout.Styles, domain.RowStyle{
		Shaded:   dataRows%2 == 1,
		Emphasis: key == domain.GrandTotalKey,
	})
}

func placeholderLayout() domain.TableLayout {
	return domain.TableLayout{
		Columns: 2,
		Rows:    [][]string{{"No data", ""}},
		Styles:  []domain.RowStyle{{}},
	}
}

// recordList reports whether v is a non-empty list of mappings.
func recordList(v any) ([]domain.Fields, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	records := make([]domain.Fields, 0, len(items))
	for _, item := range items {
		record, ok := item.(domain.Fields)
		if !ok {
			return nil, false
		}
		records = append(records, record)
	}
	return records, true
}

// renderValue converts a cell value to display text. Scalars render
// as-is (booleans, null, zero and empty strings included); a list of
// mappings renders one "k: v, k: v" line per item; any other nested
// shape falls back to generic string conversion.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}

	if records, ok := recordList(v); ok {
		lines := make([]string, 0, len(records))
		for _, record := range records {
			pairs := make([]string, 0, len(record))
			for _, field := range record {
				pairs = append(pairs, fmt.Sprintf("%s: %s", field.Key, renderValue(field.Value)))
			}
			lines = append(lines, strings.Join(pairs, ", "))
		}
		return strings.Join(lines, "\n")
	}

	return fmt.Sprintf("%v", plainValue(v))
}

// plainValue strips the ordered-field representation for generic
// printing.
func plainValue(v any) any {
	switch t := v.(type) {
	case domain.Fields:
		m := make(map[string]any, len(t))
		for _, field := range t {
			m[field.Key] = plainValue(field.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

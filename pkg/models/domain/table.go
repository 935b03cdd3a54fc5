package domain

// GrandTotalKey is the reserved field name whose value is emphasized
// in table output.
const GrandTotalKey = "grand_total"

// RowStyle is the presentation metadata for one table row.
type RowStyle struct {
	// Header marks the visually distinct column-header row.
	Header bool
	// Shaded alternates by row parity on data rows.
	Shaded bool
	// Emphasis bolds the value cell (grand-total rows, title rows).
	Emphasis bool
}

// TableLayout is a fully resolved tabular layout: rows of cells plus a
// parallel slice of styling rules. A layout is never structurally
// empty; formatters emit a placeholder row instead.
type TableLayout struct {
	// Columns is the number of cells per row.
	Columns int
	Rows    [][]string
	Styles  []RowStyle
}

package domain

// CSVColumn describes one column of a summarised CSV file.
type CSVColumn struct {
	Name          string `json:"name"`
	InferredType  string `json:"inferred_type"`
	MissingValues int    `json:"missing_values"`
}

// CSVSummary is the result of analysing a CSV file.
type CSVSummary struct {
	RowCount    int         `json:"row_count"`
	ColumnCount int         `json:"column_count"`
	Columns     []CSVColumn `json:"columns"`
}

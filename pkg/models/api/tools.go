package api

// SQLQueryArgs are the arguments of the sql tool.
type SQLQueryArgs struct {
	Query string `json:"query" jsonschema:"read-only SELECT statement to execute"`
}

// SQLQueryResult is the sql tool output: one map per row.
type SQLQueryResult struct {
	Rows []map[string]any `json:"rows"`
}

// CSVSummaryArgs are the arguments of the csv tool.
type CSVSummaryArgs struct {
	FilePath string `json:"file_path" jsonschema:"path to the CSV file to analyse"`
}

// PDFReportArgs are the arguments of the pdf tool. DataJSON carries
// the report payload as a JSON string so that object key order
// survives the transport.
type PDFReportArgs struct {
	DataJSON     string `json:"data_json" jsonschema:"report payload as a JSON string"`
	OutPath      string `json:"out_path,omitempty" jsonschema:"optional output path for the PDF"`
	IncludeChart *bool  `json:"include_chart,omitempty" jsonschema:"include an auto-generated chart (default true)"`
}

// PDFReportResult is the pdf tool output.
type PDFReportResult struct {
	Path string `json:"path"`
}

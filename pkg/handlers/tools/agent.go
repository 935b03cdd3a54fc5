package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NeurArk/mcp-data-assistant/pkg/services/agent"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/csvsummary"
)

// AgentTools exposes the same three capabilities to the in-process
// assistant loop.
func (h *Handler) AgentTools() []agent.Tool {
	return []agent.Tool{
		&sqlTool{h: h},
		&csvTool{h: h},
		&pdfTool{h: h},
	}
}

type sqlTool struct{ h *Handler }

func (t *sqlTool) Name() string { return "sql" }

func (t *sqlTool) Description() string {
	return "Execute a read-only SQL SELECT query against the assistant database"
}

func (t *sqlTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "read-only SELECT statement to execute",
			},
		},
		"required": []string{"query"},
	}
}

func (t *sqlTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	rows, err := t.h.runner.Run(ctx, query)
	if err != nil {
		return "", err
	}
	return marshalResult(rows)
}

type csvTool struct{ h *Handler }

func (t *csvTool) Name() string { return "csv" }

func (t *csvTool) Description() string {
	return "Analyze a CSV file and return summary statistics"
}

func (t *csvTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "path to the CSV file to analyse",
			},
		},
		"required": []string{"file_path"},
	}
}

func (t *csvTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	filePath, _ := args["file_path"].(string)
	summary, err := csvsummary.Summarise(t.h.paths.Find(ctx, filePath, "csv"))
	if err != nil {
		return "", err
	}
	return marshalResult(summary)
}

type pdfTool struct{ h *Handler }

func (t *pdfTool) Name() string { return "pdf" }

func (t *pdfTool) Description() string {
	return "Create a PDF report with data tables and optional charts"
}

func (t *pdfTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"data_json": map[string]any{
				"type":        "string",
				"description": "report payload as a JSON string",
			},
			"out_path": map[string]any{
				"type":        "string",
				"description": "optional output path for the PDF",
			},
			"include_chart": map[string]any{
				"type":        "boolean",
				"description": "include an auto-generated chart (default true)",
			},
		},
		"required": []string{"data_json"},
	}
}

func (t *pdfTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	dataJSON, _ := args["data_json"].(string)
	outPath, _ := args["out_path"].(string)
	includeChart := true
	if v, ok := args["include_chart"].(bool); ok {
		includeChart = v
	}

	path, err := t.h.CreateReport(ctx, dataJSON, outPath, includeChart)
	if err != nil {
		return "", err
	}
	return path, nil
}

func marshalResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(data), nil
}

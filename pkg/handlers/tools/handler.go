// Package tools exposes the assistant capabilities (sql, csv, pdf) as
// MCP tools and as agent tools.
package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/NeurArk/mcp-data-assistant/pkg/adapters"
	"github.com/NeurArk/mcp-data-assistant/pkg/models/api"
	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/csvsummary"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/files"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/report"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/sqlquery"
)

const maxRawInputEcho = 200

// Handler bundles the three tool implementations behind the serving
// layer.
type Handler struct {
	runner  *sqlquery.Runner
	creator *report.Creator
	paths   *files.Paths
}

// NewHandler creates a tool handler.
func NewHandler(runner *sqlquery.Runner, creator *report.Creator, paths *files.Paths) *Handler {
	return &Handler{
		runner:  runner,
		creator: creator,
		paths:   paths,
	}
}

// Register adds the sql, csv and pdf tools to the MCP server.
func (h *Handler) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "sql",
		Description: "Execute a read-only SQL SELECT query against the assistant database",
	}, h.runSQL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "csv",
		Description: "Analyze a CSV file and return summary statistics",
	}, h.summariseCSV)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pdf",
		Description: "Create a PDF report with data tables and optional charts",
	}, h.createPDF)
}

func (h *Handler) runSQL(
	ctx context.Context,
	req *mcp.CallToolRequest,
	args api.SQLQueryArgs,
) (*mcp.CallToolResult, api.SQLQueryResult, error) {
	rows, err := h.runner.Run(ctx, args.Query)
	if err != nil {
		return nil, api.SQLQueryResult{}, err
	}
	return nil, api.SQLQueryResult{Rows: rows}, nil
}

func (h *Handler) summariseCSV(
	ctx context.Context,
	req *mcp.CallToolRequest,
	args api.CSVSummaryArgs,
) (*mcp.CallToolResult, *domain.CSVSummary, error) {
	path := h.paths.Find(ctx, args.FilePath, "csv")
	summary, err := csvsummary.Summarise(path)
	if err != nil {
		return nil, nil, err
	}
	return nil, summary, nil
}

func (h *Handler) createPDF(
	ctx context.Context,
	req *mcp.CallToolRequest,
	args api.PDFReportArgs,
) (*mcp.CallToolResult, api.PDFReportResult, error) {
	includeChart := true
	if args.IncludeChart != nil {
		includeChart = *args.IncludeChart
	}

	path, err := h.CreateReport(ctx, args.DataJSON, args.OutPath, includeChart)
	if err != nil {
		return nil, api.PDFReportResult{}, err
	}
	return nil, api.PDFReportResult{Path: path}, nil
}

// CreateReport is the tolerant report entry point used by both the
// MCP and agent surfaces. Payloads that fail to parse become an
// error-content report, and any creation failure triggers exactly one
// retry with a minimal report stating the failure, charts disabled.
// Only when the retry also fails does the caller see an error.
func (h *Handler) CreateReport(
	ctx context.Context,
	dataJSON, outPath string,
	includeChart bool,
) (string, error) {
	logger := zerolog.Ctx(ctx)

	payload, err := adapters.ParsePayload([]byte(dataJSON))
	if err != nil {
		raw := dataJSON
		if len(raw) > maxRawInputEcho {
			raw = raw[:maxRawInputEcho] + "..."
		}
		payload = adapters.FlatPayload(domain.Fields{
			{Key: "error", Value: "Invalid JSON"},
			{Key: "raw_input", Value: raw},
		})
	}

	path, err := h.creator.CreateReport(ctx, payload, domain.ReportOptions{
		OutputPath:   outPath,
		IncludeChart: includeChart,
	})
	if err == nil {
		return path, nil
	}

	logger.Warn().Err(err).Msg("report creation failed, retrying with error report")
	fallback := adapters.FlatPayload(domain.Fields{
		{Key: "error", Value: fmt.Sprintf("Failed to create PDF: %v", err)},
	})
	path, retryErr := h.creator.CreateReport(ctx, fallback, domain.ReportOptions{
		OutputPath:   outPath,
		IncludeChart: false,
	})
	if retryErr != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	return path, nil
}

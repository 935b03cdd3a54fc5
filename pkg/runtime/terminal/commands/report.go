package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/handlers/tools"
)

type ReportCmd struct {
	dataJSON string
	outPath  string
	noChart  bool
	handler  *tools.Handler
	output   io.Writer
}

func NewReportCmd(handler *tools.Handler, output io.Writer) *cobra.Command {
	rc := &ReportCmd{handler: handler, output: output}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Create a PDF report from a JSON payload",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.dataJSON, "data", "", "Report payload as a JSON string")
	cmd.Flags().StringVar(&rc.outPath, "out", "", "Output path for the PDF (optional)")
	cmd.Flags().BoolVar(&rc.noChart, "no-chart", false, "Disable the auto-generated chart")

	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	path, err := rc.handler.CreateReport(cmd.Context(), rc.dataJSON, rc.outPath, !rc.noChart)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	_, err = fmt.Fprintf(rc.output, "Report created: %s\n", path)
	return err
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/runtime/terminal/export"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/csvsummary"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/files"
)

type CSVCmd struct {
	paths    *files.Paths
	reporter *export.Reporter
}

func NewCSVCmd(paths *files.Paths, reporter *export.Reporter) *cobra.Command {
	cc := &CSVCmd{paths: paths, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Summarise a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.run,
	}
	return cmd
}

func (cc *CSVCmd) run(cmd *cobra.Command, args []string) error {
	path := cc.paths.Find(cmd.Context(), args[0], "csv")
	summary, err := csvsummary.Summarise(path)
	if err != nil {
		return fmt.Errorf("failed to summarise CSV: %w", err)
	}

	return cc.reporter.HandleSummary(summary)
}

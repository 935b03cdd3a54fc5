package commands

import (
	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/runtime/terminal/export"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/sqlquery"
)

type SQLCmd struct {
	runner   *sqlquery.Runner
	reporter *export.Reporter
}

func NewSQLCmd(runner *sqlquery.Runner, reporter *export.Reporter) *cobra.Command {
	sc := &SQLCmd{runner: runner, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Run a read-only SELECT query against the assistant database",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}
	return cmd
}

func (sc *SQLCmd) run(cmd *cobra.Command, args []string) error {
	rows, err := sc.runner.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return sc.reporter.HandleRows(rows)
}

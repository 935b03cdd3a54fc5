package terminal

import (
	"database/sql"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/handlers/tools"
	"github.com/NeurArk/mcp-data-assistant/pkg/runtime/terminal/commands"
	"github.com/NeurArk/mcp-data-assistant/pkg/runtime/terminal/export"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/agent"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/files"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/sqlquery"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Handler   *tools.Handler
	Assistant *agent.Assistant
	Runner    *sqlquery.Runner
	Paths     *files.Paths
	DB        *sql.DB
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Data assistant tools",
	}

	reporter := export.NewReporter(opts.Output)

	cmd.AddCommand(commands.NewReportCmd(opts.Handler, opts.Output))
	cmd.AddCommand(commands.NewCSVCmd(opts.Paths, reporter))
	cmd.AddCommand(commands.NewSQLCmd(opts.Runner, reporter))
	cmd.AddCommand(commands.NewAskCmd(opts.Assistant, opts.Output))
	cmd.AddCommand(commands.NewSeedCmd(opts.DB, opts.Output))

	return cmd
}

package commands

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/store/sqlite"
)

type SeedCmd struct {
	rows   int
	db     *sql.DB
	output io.Writer
}

func NewSeedCmd(db *sql.DB, output io.Writer) *cobra.Command {
	sc := &SeedCmd{db: db, output: output}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the demo sales database",
		RunE:  sc.run,
	}

	cmd.Flags().IntVar(&sc.rows, "rows", 200, "Number of demo rows to insert")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, args []string) error {
	if err := sqlite.SeedDemo(cmd.Context(), sc.db, sc.rows); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	_, err := fmt.Fprintf(sc.output, "Seeded %d demo rows\n", sc.rows)
	return err
}

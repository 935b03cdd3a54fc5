package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/NeurArk/mcp-data-assistant/pkg/handlers/tools"
	"github.com/NeurArk/mcp-data-assistant/pkg/server"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/config"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/files"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/report"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/sqlquery"
	"github.com/NeurArk/mcp-data-assistant/pkg/store/sqlite"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the MCP server for the data assistant",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (optional)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Settings{
		DbPath: cfg.Database.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	paths, err := files.NewPaths(".")
	if err != nil {
		return fmt.Errorf("failed to prepare data directories: %w", err)
	}

	handler := tools.NewHandler(
		sqlquery.NewRunner(db),
		report.NewCreator(report.Config{
			OutputDir: cfg.Reports.Dir,
			LogoPath:  cfg.Reports.Logo,
		}),
		paths,
	)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	logger.Info().Msgf("Database ready at `%s`.", cfg.Database.Path)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Tools: handler,
		},
	})

	return api.Start()
}

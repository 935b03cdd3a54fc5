package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/NeurArk/mcp-data-assistant/pkg/handlers/tools"
	"github.com/NeurArk/mcp-data-assistant/pkg/runtime/terminal"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/agent"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/config"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/files"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/report"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/session"
	"github.com/NeurArk/mcp-data-assistant/pkg/services/sqlquery"
	"github.com/NeurArk/mcp-data-assistant/pkg/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load("")
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

	runner := sqlquery.NewRunner(db)
	handler := tools.NewHandler(
		runner,
		report.NewCreator(report.Config{
			OutputDir: cfg.Reports.Dir,
			LogoPath:  cfg.Reports.Logo,
		}),
		paths,
	)

	var assistant *agent.Assistant
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		assistant = agent.NewAssistant(agent.Options{
			APIKey:   apiKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			Model:    cfg.OpenAI.Model,
			Sessions: session.NewManager(),
			Tools:    handler.AgentTools(),
		})
	}

	cli := terminal.NewCLI(terminal.Options{
		Handler:   handler,
		Assistant: assistant,
		Runner:    runner,
		Paths:     paths,
		DB:        db,
		Output:    os.Stdout,
	})

	return cli.Execute()
}

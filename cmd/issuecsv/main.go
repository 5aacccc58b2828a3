package main

import (
	"log/slog"
	"os"

	"github.com/JonMunkholm/issuecsv/internal/cli"
	"github.com/JonMunkholm/issuecsv/internal/config"
	_ "github.com/JonMunkholm/issuecsv/internal/core/templates" // Register all templates
	"github.com/JonMunkholm/issuecsv/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal for the CLI; existing env vars win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr so CSV on stdout stays clean
	logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	os.Exit(cli.Execute(cli.NewApp(cfg.Export), os.Args[1:]))
}

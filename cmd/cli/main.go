package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/fintrack/fintrack-cli/internal/buildinfo"
	"github.com/fintrack/fintrack-cli/internal/client/cli"
	"github.com/fintrack/fintrack-cli/internal/client/config"
	"github.com/fintrack/fintrack-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vibejournal/internal/buildinfo"
	"github.com/dmitrijs2005/vibejournal/internal/client/cli"
	"github.com/dmitrijs2005/vibejournal/internal/client/config"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

// loadConfig turns a config panic (bad flag, unreadable file) into a fatal log.
func loadConfig() (cfg *config.Config) {
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("failed to load config: %v", r)
		}
	}()
	return config.LoadConfig()
}

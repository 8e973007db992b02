package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/app"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization failed: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, logger, app.ServeOptions{Version: version, ConfigPath: *configPath}); err != nil {
		logger.Error("Server exited with error", logging.Err(err))
		stop()
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

//Personal.AI order the ending

package app

import (
	"context"
	"errors"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	httpserver "github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/http"
)

// ServeOptions controls Serve.
type ServeOptions struct {
	Version string
	// ConfigPath enables log level hot reload when set.
	ConfigPath string
}

// Serve builds the App, starts the HTTP server and blocks until ctx is
// cancelled, then drains the server and closes every backend.
func Serve(ctx context.Context, cfg *config.Config, log logging.Logger, opts ServeOptions) error {
	a, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("Failed to close backends", logging.Err(err))
		}
	}()

	router, err := a.Router(opts.Version)
	if err != nil {
		return err
	}
	srv := httpserver.NewServer(cfg.Server, router, log)

	if opts.ConfigPath != "" {
		watchLogLevel(opts.ConfigPath, log)
	}

	poolCtx, stopPool := context.WithCancel(ctx)
	defer stopPool()
	if cfg.Metrics.Enabled {
		go a.ReportPool(poolCtx, 0)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Info("Drug interaction dashboard started",
		logging.String("version", opts.Version),
		logging.String("addr", srv.Addr()),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func watchLogLevel(path string, log logging.Logger) {
	setter, ok := log.(logging.LevelSetter)
	if !ok {
		return
	}
	config.Watch(path, func(c *config.Config) {
		setter.SetLevel(c.Log.Level)
		log.Info("Log level reloaded", logging.String("level", c.Log.Level))
	}, func(err error) {
		log.Warn("Ignoring invalid configuration change", logging.Err(err))
	})
}

//Personal.AI order the ending

// Package app wires configuration into the running dashboard: the database
// pool, the memo store, the optional graph sink and artifact store, the
// services and the HTTP router. Both the API server and the CLI build on it.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/dashboard"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/memo"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/neo4j"
	neo4jrepo "github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/neo4j/repositories"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres"
	pgrepo "github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres/repositories"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/redis"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/messaging/kafka"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/prometheus"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/storage/minio"
	httpserver "github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/http"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/http/handlers"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/interfaces/http/middleware"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/retry"
)

// App owns every long-lived dependency. Redis, Neo4j, MinIO and the Kafka
// producer are nil when not configured.
type App struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics

	DB    *postgres.Connection
	Redis *redis.Client
	Neo4j *neo4j.Driver
	MinIO *minio.Client
	Sink  neo4jrepo.GraphSink
	Kafka *kafka.Producer

	Memo      *memo.Memoizer
	Catalog   *catalog.Service
	Dashboard *dashboard.Service

	closers []func() error
}

// New connects to PostgreSQL, applies migrations when database.auto_migrate
// is set and builds the rest of the graph.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	pgcfg := postgres.FromConfig(cfg.Database)
	if cfg.Database.AutoMigrate {
		if err := postgres.NewMigrator(pgcfg, log).Up(); err != nil {
			return nil, err
		}
	}
	conn, err := postgres.NewConnection(pgcfg, log)
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg, conn, log)
}

// Build assembles the App over an open connection and takes ownership of it.
// Optional backends are connected here; a failure closes conn and everything
// opened after it.
func Build(ctx context.Context, cfg *config.Config, conn *postgres.Connection, log logging.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log, DB: conn}
	a.closers = append(a.closers, conn.Close)
	if err := a.build(ctx); err != nil {
		if cerr := a.Close(); cerr != nil {
			log.Warn("Failed to close backends after startup error", logging.Err(cerr))
		}
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) (err error) {
	cfg, log, conn := a.Config, a.Logger, a.DB

	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = config.DefaultMetricsNamespace
	}
	a.Collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            namespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, log)
	if err != nil {
		return err
	}
	a.Metrics = prometheus.NewAppMetrics(a.Collector)

	store, err := a.memoStore()
	if err != nil {
		return err
	}
	// Properties runs two statements per load.
	a.Memo = memo.New(store, log,
		memo.WithTTL(cfg.Cache.TTL),
		memo.WithLoadTimeout(2*cfg.Database.StatementTimeout),
		memo.WithRecorder(a.Metrics),
	)

	a.Catalog = catalog.NewService(
		pgrepo.NewPostgresCatalogRepo(conn, log),
		pgrepo.NewPostgresInteractionRepo(conn, log),
		a.Memo, log,
		catalog.WithObserver(a.Metrics),
	)

	if cfg.Neo4j.Enabled {
		if a.Neo4j, err = neo4j.NewDriver(cfg.Neo4j, log); err != nil {
			return err
		}
		a.closers = append(a.closers, a.Neo4j.Close)
		a.Sink = neo4jrepo.NewNeo4jGraphSink(a.Neo4j, log)
		if err = a.Sink.EnsureConstraints(ctx); err != nil {
			return err
		}
	}

	opts := []dashboard.Option{
		dashboard.WithRetry(RetryConfig(cfg.Retry)),
		dashboard.WithMetrics(a.Metrics),
		dashboard.WithLeafPolicy(LeafPolicy(cfg.Network)),
	}
	if cfg.MinIO.Enabled {
		if a.MinIO, err = minio.NewClient(cfg.MinIO, log); err != nil {
			return err
		}
		a.closers = append(a.closers, a.MinIO.Close)
		exportOpts := []appnet.ExporterOption{
			appnet.WithExportRecorder(a.Metrics),
			appnet.WithPresignExpiry(cfg.MinIO.PresignExpiry),
		}
		if a.Sink != nil {
			exportOpts = append(exportOpts, appnet.WithGraphSink(a.Sink))
		}
		if cfg.Kafka.Enabled {
			if a.Kafka, err = kafka.NewProducer(cfg.Kafka, log); err != nil {
				return err
			}
			a.closers = append(a.closers, a.Kafka.Close)
			events := kafka.NewEventPublisher(a.Kafka, cfg.Kafka.Topic, log, a.Metrics)
			exportOpts = append(exportOpts, appnet.WithExportNotifier(events))
		}
		opts = append(opts, dashboard.WithExporter(appnet.NewExporter(minio.NewArtifactStore(a.MinIO, log), log, exportOpts...)))
	}

	renderer, err := appnet.NewRenderer()
	if err != nil {
		return err
	}
	a.Dashboard = dashboard.NewService(a.Catalog, appnet.NewLayouter(cfg.Network), renderer, log, opts...)

	log.Info("Application initialized",
		logging.String("cache_backend", cfg.Cache.Backend),
		logging.Bool("neo4j", a.Neo4j != nil),
		logging.Bool("minio", a.MinIO != nil),
		logging.Bool("kafka", a.Kafka != nil),
	)
	return nil
}

func (a *App) memoStore() (memo.Store, error) {
	if a.Config.Cache.Backend != "redis" {
		s := memo.NewMemoryStore(a.Config.Cache.SweepInterval)
		a.closers = append(a.closers, s.Close)
		return s, nil
	}
	client, err := redis.NewClient(a.Config.Redis, a.Logger)
	if err != nil {
		return nil, err
	}
	a.Redis = client
	a.closers = append(a.closers, client.Close)
	return redis.NewCache(client, a.Logger,
		redis.WithPrefix(a.Config.Redis.KeyPrefix),
		redis.WithDefaultTTL(a.Config.Cache.TTL),
	), nil
}

// RetryConfig maps the retry section onto pkg/retry.
func RetryConfig(c config.RetryConfig) retry.Config {
	rc := *retry.DefaultConfig()
	if c.MaxAttempts > 0 {
		rc.MaxAttempts = c.MaxAttempts
	}
	if c.InitialDelay > 0 {
		rc.InitialDelay = c.InitialDelay
	}
	if c.MaxDelay > 0 {
		rc.MaxDelay = c.MaxDelay
	}
	if c.Multiplier > 0 {
		rc.Multiplier = c.Multiplier
	}
	return rc
}

// LeafPolicy returns the leaf policy selected by network.merge_leaves.
func LeafPolicy(c config.NetworkConfig) domainNet.LeafPolicy {
	if c.MergeLeaves {
		return domainNet.LeafMergedByDrug
	}
	return domainNet.LeafPerMechanism
}

// Checkers lists the health checks of every connected backend.
func (a *App) Checkers() []handlers.HealthChecker {
	checkers := []handlers.HealthChecker{a.DB}
	if a.Redis != nil {
		checkers = append(checkers, a.Redis)
	}
	if a.Neo4j != nil {
		checkers = append(checkers, a.Neo4j)
	}
	if a.MinIO != nil {
		checkers = append(checkers, a.MinIO)
	}
	return checkers
}

// Router builds the HTTP handler tree.
func (a *App) Router(version string) (http.Handler, error) {
	page, err := handlers.NewDashboardHandler(a.Catalog, a.Dashboard, a.Logger)
	if err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = a.Config.Server.AllowedOrigins
	logCfg := middleware.DefaultLoggingConfig()
	if a.Config.Server.SlowThreshold > 0 {
		logCfg.SlowThreshold = a.Config.Server.SlowThreshold
	}

	rc := httpserver.RouterConfig{
		DrugHandler:      handlers.NewDrugHandler(a.Catalog, a.Dashboard, a.Logger),
		NetworkHandler:   handlers.NewNetworkHandler(a.Dashboard, a.Logger),
		DashboardHandler: page,
		HealthHandler:    handlers.NewHealthHandler(version, a.Metrics, a.Checkers()...),
		CORS:             cors,
		Logging:          logCfg,
		Logger:           a.Logger,
	}
	if a.Config.Metrics.Enabled {
		rc.HTTPRecorder = a.Metrics
		rc.MetricsCollector = a.Collector
		rc.MetricsPath = a.Config.Metrics.Path
	}
	return httpserver.NewRouter(rc), nil
}

// ReportPool publishes connection pool gauges every interval until ctx is
// done.
func (a *App) ReportPool(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		a.recordPool()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *App) recordPool() {
	s := a.DB.Stats()
	a.Metrics.RecordPool(a.DB.Name(), s.OpenConnections, s.InUse)
	if a.Redis != nil {
		if ps := a.Redis.PoolStats(); ps != nil {
			a.Metrics.RecordPool(a.Redis.Name(), int(ps.TotalConns), int(ps.TotalConns-ps.IdleConns))
		}
	}
}

// Close releases every backend in reverse order of opening and returns the
// first error.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

//Personal.AI order the ending

package cli

import (
	"context"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/app"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/neo4j/repositories"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

// CatalogService answers the catalog queries. Implemented by catalog.Service.
type CatalogService interface {
	Search(ctx context.Context, term string) catalog.Result[[]drug.DrugSummary]
	TopDrugs(ctx context.Context) catalog.Result[[]drug.DrugSummary]
	Detail(ctx context.Context, name string) catalog.Result[*drug.DrugDetail]
	Properties(ctx context.Context, name string) catalog.Result[*drug.PropertyRecord]
	Interactions(ctx context.Context, name string) catalog.Result[[]drug.InteractionEdge]
}

// DashboardService renders and exports networks. Implemented by
// dashboard.Service.
type DashboardService interface {
	NetworkDocument(ctx context.Context, name string) ([]byte, error)
	Export(ctx context.Context, name string) (*appnet.ExportResult, error)
	DrugLikeness(ctx context.Context, term string) (*drug.DrugLikeness, error)
}

// CacheService drops memoized results. Implemented by memo.Memoizer.
type CacheService interface {
	Invalidate(ctx context.Context, operation string) (int64, error)
}

// PeerFinder reads mirrored networks back from the graph database.
type PeerFinder interface {
	Peers(ctx context.Context, drug string) ([]repositories.PeerLink, error)
}

// Migrator applies the embedded schema. Implemented by postgres.Migrator.
type Migrator interface {
	Up() error
	Down(steps int) error
	Status() (postgres.MigrationState, error)
	Force(version int) error
}

// Services are the connected backends a command works with. Peers is nil
// when the graph database is disabled.
type Services struct {
	Catalog   CatalogService
	Dashboard DashboardService
	Cache     CacheService
	Peers     PeerFinder
	Close     func() error
}

// Dependencies are the constructors the command tree calls. Tests replace
// them with fakes.
type Dependencies struct {
	LoadConfig  func(path string) (*config.Config, error)
	NewLogger   func(cfg logging.LogConfig) (logging.Logger, error)
	NewServices func(ctx context.Context, cfg *config.Config, log logging.Logger) (*Services, error)
	NewMigrator func(cfg *config.Config, log logging.Logger) Migrator
	Serve       func(ctx context.Context, cfg *config.Config, log logging.Logger, opts app.ServeOptions) error
}

// DefaultDependencies connects to the configured backends.
func DefaultDependencies() Dependencies {
	return Dependencies{
		LoadConfig:  config.Load,
		NewLogger:   logging.NewLogger,
		NewServices: newServices,
		NewMigrator: func(cfg *config.Config, log logging.Logger) Migrator {
			return postgres.NewMigrator(postgres.FromConfig(cfg.Database), log)
		},
		Serve: app.Serve,
	}
}

func newServices(ctx context.Context, cfg *config.Config, log logging.Logger) (*Services, error) {
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	s := &Services{
		Catalog:   a.Catalog,
		Dashboard: a.Dashboard,
		Cache:     a.Memo,
		Close:     a.Close,
	}
	if a.Sink != nil {
		s.Peers = a.Sink
	}
	return s, nil
}

//Personal.AI order the ending

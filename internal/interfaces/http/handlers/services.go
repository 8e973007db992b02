package handlers

import (
	"context"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/dashboard"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
)

// CatalogService is the fail-soft query API, implemented by catalog.Service.
type CatalogService interface {
	Search(ctx context.Context, term string) catalog.Result[[]drug.DrugSummary]
	TopDrugs(ctx context.Context) catalog.Result[[]drug.DrugSummary]
	Detail(ctx context.Context, name string) catalog.Result[*drug.DrugDetail]
	Properties(ctx context.Context, name string) catalog.Result[*drug.PropertyRecord]
	Interactions(ctx context.Context, name string) catalog.Result[[]drug.InteractionEdge]
}

// DashboardService is the orchestration API, implemented by dashboard.Service.
type DashboardService interface {
	Panel(ctx context.Context, name string) (*dashboard.Panel, error)
	Network(ctx context.Context, name string) (*dashboard.NetworkView, error)
	NetworkDocument(ctx context.Context, name string) ([]byte, error)
	Export(ctx context.Context, name string) (*appnet.ExportResult, error)
	DrugLikeness(ctx context.Context, term string) (*drug.DrugLikeness, error)
}

var (
	_ CatalogService   = (*catalog.Service)(nil)
	_ DashboardService = (*dashboard.Service)(nil)
)

//Personal.AI order the ending

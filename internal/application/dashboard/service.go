// Package dashboard assembles the dashboard panels from the catalog service
// and the network pipeline. Unlike catalog it fails loudly: assembly runs
// under retry and the last error reaches the caller, which shows the error
// panel.
package dashboard

import (
	"context"
	"html/template"
	"time"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/retry"
)

// Operation names used for retry metrics and logs.
const (
	OpPanel          = "panel"
	OpNetwork        = "network"
	OpNetworkExport  = "network_export"
	OpNetworkDoc     = "network_document"
	OpDrugLikeness   = "druglikeness"
	NoInteractionMsg = "No interactions found"
)

// Metrics observes orchestration outcomes. Implemented by the Prometheus
// collector.
type Metrics interface {
	RecordRetry(operation string)
	RecordGraph(policy string, nodes int)
}

type nopMetrics struct{}

func (nopMetrics) RecordRetry(string)      {}
func (nopMetrics) RecordGraph(string, int) {}

// NetworkView is a laid out graph ready for embedding. Graph is nil when the
// drug has no interactions, and Message says so.
type NetworkView struct {
	Graph   *domainNet.Graph `json:"graph"`
	Layout  *appnet.Layout   `json:"layout,omitempty"`
	SVG     template.HTML    `json:"-"`
	Message string           `json:"message,omitempty"`
}

// Panel is everything the dashboard page shows for one selected drug. A nil
// section comes with an entry in Messages.
type Panel struct {
	Drug         string                 `json:"drug"`
	Detail       *drug.DrugDetail       `json:"detail"`
	Properties   *drug.PropertyRecord   `json:"properties"`
	Assessment   *drug.Assessment       `json:"assessment,omitempty"`
	Interactions []drug.InteractionEdge `json:"interactions"`
	Network      *NetworkView           `json:"network"`
	Messages     map[string]string      `json:"messages,omitempty"`
}

// Panel section names.
const (
	SectionDetail       = "detail"
	SectionProperties   = "properties"
	SectionInteractions = "interactions"
	SectionNetwork      = "network"
)

// Service orchestrates the dashboard.
type Service struct {
	catalog  *catalog.Service
	layouter *appnet.Layouter
	renderer *appnet.Renderer
	exporter *appnet.Exporter
	policy   domainNet.LeafPolicy
	retry    retry.Config
	metrics  Metrics
	logger   logging.Logger
}

type Option func(*Service)

// WithExporter enables network export. Without it Export fails with
// ErrCodeFeatureDisabled.
func WithExporter(e *appnet.Exporter) Option {
	return func(s *Service) { s.exporter = e }
}

// WithLeafPolicy selects how shared drugs appear in the network.
func WithLeafPolicy(p domainNet.LeafPolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithRetry replaces retry.DefaultConfig. Hooks on cfg are kept and run
// before the service's own.
func WithRetry(cfg retry.Config) Option {
	return func(s *Service) { s.retry = cfg }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewService(cat *catalog.Service, layouter *appnet.Layouter, renderer *appnet.Renderer, log logging.Logger, opts ...Option) *Service {
	s := &Service{
		catalog:  cat,
		layouter: layouter,
		renderer: renderer,
		policy:   domainNet.LeafPerMechanism,
		retry:    *retry.DefaultConfig(),
		metrics:  nopMetrics{},
		logger:   log.Named("dashboard"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the underlying query service.
func (s *Service) Catalog() *catalog.Service { return s.catalog }

// ExportEnabled reports whether an exporter is configured.
func (s *Service) ExportEnabled() bool { return s.exporter != nil }

// Panel assembles the full dashboard for name. Empty catalog results become
// "No data available" messages; layout and rendering faults are retried and
// then returned.
func (s *Service) Panel(ctx context.Context, name string) (*Panel, error) {
	name = drug.NormalizeName(name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeDrugNameRequired, "drug name is required")
	}
	return withRetry(ctx, s, OpPanel, name, func() (*Panel, error) {
		p := &Panel{Drug: name, Messages: make(map[string]string)}

		detail := s.catalog.Detail(ctx, name)
		if detail.Empty() {
			p.Messages[SectionDetail] = catalog.NoDataMessage
		} else {
			p.Detail = detail.Data()
		}

		props := s.catalog.Properties(ctx, name)
		if props.Empty() {
			p.Messages[SectionProperties] = catalog.NoDataMessage
		} else {
			p.Properties = props.Data()
			a := drug.Assess(*p.Properties)
			p.Assessment = &a
		}

		rows := s.catalog.Interactions(ctx, name)
		if rows.Empty() {
			p.Messages[SectionInteractions] = catalog.NoDataMessage
		}
		p.Interactions = rows.Data()

		view, err := s.view(name, rows.Data())
		if err != nil {
			return nil, err
		}
		p.Network = view
		if view.Graph == nil {
			p.Messages[SectionNetwork] = NoInteractionMsg
		}
		return p, nil
	})
}

// Network returns the laid out interaction graph of name. An interaction
// query fault is retried.
func (s *Service) Network(ctx context.Context, name string) (*NetworkView, error) {
	name = drug.NormalizeName(name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeDrugNameRequired, "drug name is required")
	}
	return withRetry(ctx, s, OpNetwork, name, func() (*NetworkView, error) {
		rows, err := s.interactions(ctx, name)
		if err != nil {
			return nil, err
		}
		return s.view(name, rows)
	})
}

// NetworkDocument renders the standalone HTML document of name. A drug
// without interactions yields ErrCodeNoInteractions.
func (s *Service) NetworkDocument(ctx context.Context, name string) ([]byte, error) {
	name = drug.NormalizeName(name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeDrugNameRequired, "drug name is required")
	}
	return withRetry(ctx, s, OpNetworkDoc, name, func() ([]byte, error) {
		g, l, err := s.layout(ctx, name)
		if err != nil {
			return nil, err
		}
		return s.renderer.Render(g, l)
	})
}

// Export renders the network of name and stores it.
func (s *Service) Export(ctx context.Context, name string) (*appnet.ExportResult, error) {
	if s.exporter == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "network export is not configured")
	}
	name = drug.NormalizeName(name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeDrugNameRequired, "drug name is required")
	}
	return withRetry(ctx, s, OpNetworkExport, name, func() (*appnet.ExportResult, error) {
		g, l, err := s.layout(ctx, name)
		if err != nil {
			return nil, err
		}
		doc, err := s.renderer.Render(g, l)
		if err != nil {
			return nil, err
		}
		return s.exporter.Export(ctx, g, doc)
	})
}

// DrugLikeness evaluates the rule-of-five over the properties of the search
// results for term. A blank term uses the head of the top list.
func (s *Service) DrugLikeness(ctx context.Context, term string) (*drug.DrugLikeness, error) {
	return withRetry(ctx, s, OpDrugLikeness, term, func() (*drug.DrugLikeness, error) {
		found := s.catalog.Search(ctx, term)
		if err := found.Err(); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(found.Data()))
		for _, d := range found.Data() {
			names = append(names, d.Name)
		}
		props := s.catalog.PropertiesBatch(ctx, names)
		if err := props.Err(); err != nil {
			return nil, err
		}
		dl := drug.EvaluateDrugLikeness(props.Data())
		return &dl, nil
	})
}

func (s *Service) interactions(ctx context.Context, name string) ([]drug.InteractionEdge, error) {
	rows := s.catalog.Interactions(ctx, name)
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rows.Data(), nil
}

func (s *Service) build(name string, rows []drug.InteractionEdge) (*domainNet.Graph, bool) {
	g, ok := domainNet.Build(name, rows, domainNet.WithLeafPolicy(s.policy))
	if ok {
		s.metrics.RecordGraph(string(g.Policy), len(g.Nodes))
	}
	return g, ok
}

func (s *Service) layout(ctx context.Context, name string) (*domainNet.Graph, *appnet.Layout, error) {
	rows, err := s.interactions(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	g, ok := s.build(name, rows)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeNoInteractions, NoInteractionMsg).WithDetail(name)
	}
	l, err := s.layouter.Layout(g)
	if err != nil {
		return nil, nil, err
	}
	return g, l, nil
}

func (s *Service) view(name string, rows []drug.InteractionEdge) (*NetworkView, error) {
	g, ok := s.build(name, rows)
	if !ok {
		return &NetworkView{Message: NoInteractionMsg}, nil
	}
	l, err := s.layouter.Layout(g)
	if err != nil {
		return nil, err
	}
	svg, err := s.renderer.RenderSVG(g, l)
	if err != nil {
		return nil, err
	}
	return &NetworkView{Graph: g, Layout: l, SVG: svg}, nil
}

// permanent lists codes no retry can fix.
var permanent = []errors.ErrorCode{
	errors.ErrCodeNoInteractions,
	errors.ErrCodeDrugNameRequired,
	errors.ErrCodeFeatureDisabled,
	errors.ErrCodeValidation,
}

func retryable(err error) bool {
	for _, code := range permanent {
		if errors.IsCode(err, code) {
			return false
		}
	}
	return true
}

func withRetry[T any](ctx context.Context, s *Service, op, arg string, fn func() (T, error)) (T, error) {
	log := logging.FromContext(ctx, s.logger).With(
		logging.String(logging.FieldOperation, op),
		logging.String(logging.FieldDrug, arg),
	)

	cfg := s.retry
	userRetryIf, userOnRetry := cfg.RetryIf, cfg.OnRetry
	cfg.RetryIf = func(err error) bool {
		if userRetryIf != nil && !userRetryIf(err) {
			return false
		}
		return retryable(err)
	}
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		if userOnRetry != nil {
			userOnRetry(attempt, err, delay)
		}
		s.metrics.RecordRetry(op)
		log.Warn("Retrying dashboard operation",
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
			logging.Err(err),
		)
	}

	start := time.Now()
	v, err := retry.DoWithResult(ctx, &cfg, fn)
	if err != nil && retryable(err) {
		log.Error("Dashboard operation failed", logging.Duration(logging.FieldDuration, time.Since(start)), logging.Err(err))
	}
	return v, err
}

//Personal.AI order the ending

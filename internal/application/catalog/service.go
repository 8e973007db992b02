// Package catalog is the fail-soft query boundary of the dashboard. Every
// operation returns a Result instead of an error: faults are logged with the
// operation and its arguments and surface as an empty panel.
package catalog

import (
	"context"
	"time"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/memo"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

// Operation names, used for memo keys, log fields and metric labels.
const (
	OpSearch       = "search"
	OpTopDrugs     = "top_drugs"
	OpDetail       = "detail"
	OpProperties   = "properties"
	OpInteractions = "interactions"
)

// QueryObserver records the duration and outcome of each uncached load.
type QueryObserver interface {
	ObserveQuery(operation string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, time.Duration, error) {}

// Service answers the UI-facing catalog queries.
type Service struct {
	catalog      drug.CatalogRepository
	interactions drug.InteractionRepository
	memo         *memo.Memoizer
	observer     QueryObserver
	logger       logging.Logger
}

type Option func(*Service)

// WithObserver attaches query instrumentation.
func WithObserver(o QueryObserver) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewService wires the repositories behind m.
func NewService(catalog drug.CatalogRepository, interactions drug.InteractionRepository, m *memo.Memoizer, log logging.Logger, opts ...Option) *Service {
	s := &Service{
		catalog:      catalog,
		interactions: interactions,
		memo:         m,
		observer:     nopObserver{},
		logger:       log.Named("catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns up to ten suggestions for term. A blank term returns the
// head of the top list.
func (s *Service) Search(ctx context.Context, term string) Result[[]drug.DrugSummary] {
	term = drug.NormalizeName(term)
	if term == "" {
		top := s.TopDrugs(ctx)
		if !top.OK() {
			return Failed[[]drug.DrugSummary](Diagnostic{Operation: OpSearch, Message: top.Diagnostic().Message, Cause: top.Diagnostic().Cause})
		}
		rows := top.Data()
		if len(rows) > drug.DefaultSearchLimit {
			rows = rows[:drug.DefaultSearchLimit]
		}
		return Ok(rows)
	}

	rows, err := memo.Do(ctx, s.memo, OpSearch, []string{term}, func(ctx context.Context) ([]drug.DrugSummary, error) {
		return observe(s, OpSearch, func() ([]drug.DrugSummary, error) {
			return s.catalog.SearchDrugs(ctx, term, drug.DefaultSearchLimit)
		})
	})
	if err != nil {
		return failed[[]drug.DrugSummary](ctx, s, OpSearch, term, "drug search failed", err)
	}
	return Ok(rows)
}

// TopDrugs returns the ranked list of therapeutic phase 3 and 4 drugs.
func (s *Service) TopDrugs(ctx context.Context) Result[[]drug.DrugSummary] {
	rows, err := memo.Do(ctx, s.memo, OpTopDrugs, nil, func(ctx context.Context) ([]drug.DrugSummary, error) {
		return observe(s, OpTopDrugs, func() ([]drug.DrugSummary, error) {
			return s.catalog.TopDrugs(ctx, drug.DefaultTopLimit)
		})
	})
	if err != nil {
		return failed[[]drug.DrugSummary](ctx, s, OpTopDrugs, "", "top drug list failed", err)
	}
	return Ok(rows)
}

// Detail returns the molecule_dictionary row for name, or an empty result.
func (s *Service) Detail(ctx context.Context, name string) Result[*drug.DrugDetail] {
	name = drug.NormalizeName(name)
	if name == "" {
		return Ok[*drug.DrugDetail](nil)
	}
	d, err := memo.Do(ctx, s.memo, OpDetail, []string{name}, func(ctx context.Context) (*drug.DrugDetail, error) {
		return observe(s, OpDetail, func() (*drug.DrugDetail, error) {
			return s.catalog.FindDetail(ctx, name)
		})
	})
	if err != nil {
		return failed[*drug.DrugDetail](ctx, s, OpDetail, name, "drug detail failed", err)
	}
	return Ok(d)
}

// Properties resolves name to its molecule id and then reads its
// compound_properties row. Either step finding nothing yields an empty result.
func (s *Service) Properties(ctx context.Context, name string) Result[*drug.PropertyRecord] {
	name = drug.NormalizeName(name)
	if name == "" {
		return Ok[*drug.PropertyRecord](nil)
	}
	p, err := memo.Do(ctx, s.memo, OpProperties, []string{name}, func(ctx context.Context) (*drug.PropertyRecord, error) {
		return observe(s, OpProperties, func() (*drug.PropertyRecord, error) {
			return s.loadProperties(ctx, name)
		})
	})
	if err != nil {
		return failed[*drug.PropertyRecord](ctx, s, OpProperties, name, "drug properties failed", err)
	}
	return Ok(p)
}

func (s *Service) loadProperties(ctx context.Context, name string) (*drug.PropertyRecord, error) {
	id, ok, err := s.catalog.FindMolregno(ctx, name)
	if err != nil || !ok {
		return nil, err
	}
	p, err := s.catalog.FindProperties(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// Interactions returns the drugs sharing a mechanism with name. Self rows are
// dropped and the result never exceeds drug.MaxInteractions rows.
func (s *Service) Interactions(ctx context.Context, name string) Result[[]drug.InteractionEdge] {
	name = drug.NormalizeName(name)
	if name == "" {
		return Ok([]drug.InteractionEdge{})
	}
	rows, err := memo.Do(ctx, s.memo, OpInteractions, []string{name}, func(ctx context.Context) ([]drug.InteractionEdge, error) {
		return observe(s, OpInteractions, func() ([]drug.InteractionEdge, error) {
			rows, err := s.interactions.FindSharedMechanisms(ctx, name, drug.MaxInteractions)
			if err != nil {
				return nil, err
			}
			return withoutSelf(name, rows), nil
		})
	})
	if err != nil {
		return failed[[]drug.InteractionEdge](ctx, s, OpInteractions, name, "interaction lookup failed", err)
	}
	return Ok(rows)
}

func withoutSelf(name string, rows []drug.InteractionEdge) []drug.InteractionEdge {
	out := make([]drug.InteractionEdge, 0, len(rows))
	for _, r := range rows {
		if drug.SameDrug(r.InteractingDrug, name) {
			continue
		}
		out = append(out, r)
		if len(out) == drug.MaxInteractions {
			break
		}
	}
	return out
}

// PropertiesBatch collects property records for names, skipping names with
// no record. Individual faults are logged and skipped; the batch fails only
// when every lookup failed.
func (s *Service) PropertiesBatch(ctx context.Context, names []string) Result[[]drug.PropertyRecord] {
	out := make([]drug.PropertyRecord, 0, len(names))
	var (
		lastFault *Diagnostic
		faults    int
	)
	for _, n := range names {
		res := s.Properties(ctx, n)
		if !res.OK() {
			faults++
			lastFault = res.Diagnostic()
			continue
		}
		if p := res.Data(); p != nil {
			out = append(out, *p)
		}
	}
	if faults > 0 && faults == len(names) {
		return Failed[[]drug.PropertyRecord](*lastFault)
	}
	return Ok(out)
}

func observe[T any](s *Service, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	s.observer.ObserveQuery(op, time.Since(start), err)
	return v, err
}

func failed[T any](ctx context.Context, s *Service, op, arg, msg string, err error) Result[T] {
	logging.FromContext(ctx, s.logger).Error(msg,
		logging.String(logging.FieldOperation, op),
		logging.String(logging.FieldDrug, arg),
		logging.Err(err),
	)
	return Failed[T](Diagnostic{Operation: op, Message: NoDataMessage, Cause: err})
}

//Personal.AI order the ending

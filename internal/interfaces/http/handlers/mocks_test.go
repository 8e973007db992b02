package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/dashboard"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
)

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) Search(ctx context.Context, term string) catalog.Result[[]drug.DrugSummary] {
	return m.Called(ctx, term).Get(0).(catalog.Result[[]drug.DrugSummary])
}

func (m *mockCatalog) TopDrugs(ctx context.Context) catalog.Result[[]drug.DrugSummary] {
	return m.Called(ctx).Get(0).(catalog.Result[[]drug.DrugSummary])
}

func (m *mockCatalog) Detail(ctx context.Context, name string) catalog.Result[*drug.DrugDetail] {
	return m.Called(ctx, name).Get(0).(catalog.Result[*drug.DrugDetail])
}

func (m *mockCatalog) Properties(ctx context.Context, name string) catalog.Result[*drug.PropertyRecord] {
	return m.Called(ctx, name).Get(0).(catalog.Result[*drug.PropertyRecord])
}

func (m *mockCatalog) Interactions(ctx context.Context, name string) catalog.Result[[]drug.InteractionEdge] {
	return m.Called(ctx, name).Get(0).(catalog.Result[[]drug.InteractionEdge])
}

type mockDashboard struct{ mock.Mock }

func (m *mockDashboard) Panel(ctx context.Context, name string) (*dashboard.Panel, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(*dashboard.Panel)
	return p, args.Error(1)
}

func (m *mockDashboard) Network(ctx context.Context, name string) (*dashboard.NetworkView, error) {
	args := m.Called(ctx, name)
	v, _ := args.Get(0).(*dashboard.NetworkView)
	return v, args.Error(1)
}

func (m *mockDashboard) NetworkDocument(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockDashboard) Export(ctx context.Context, name string) (*appnet.ExportResult, error) {
	args := m.Called(ctx, name)
	r, _ := args.Get(0).(*appnet.ExportResult)
	return r, args.Error(1)
}

func (m *mockDashboard) DrugLikeness(ctx context.Context, term string) (*drug.DrugLikeness, error) {
	args := m.Called(ctx, term)
	d, _ := args.Get(0).(*drug.DrugLikeness)
	return d, args.Error(1)
}

// serve routes a single request through a chi router so {name} resolves.
func serve(method, pattern string, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

//Personal.AI order the ending

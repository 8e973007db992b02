package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/dashboard"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/testutil"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

type NetworkHandlerTestSuite struct {
	suite.Suite
	dashboard *mockDashboard
	log       *testutil.MockLogger
	handler   *NetworkHandler
}

func (s *NetworkHandlerTestSuite) SetupTest() {
	s.dashboard = new(mockDashboard)
	s.log = testutil.NewMockLogger()
	s.handler = NewNetworkHandler(s.dashboard, s.log)
}

func (s *NetworkHandlerTestSuite) TearDownTest() {
	s.dashboard.AssertExpectations(s.T())
}

func (s *NetworkHandlerTestSuite) TestGraph() {
	view := &dashboard.NetworkView{
		Graph:  &domainNet.Graph{Selected: "ASPIRIN", Nodes: []domainNet.Node{{ID: "hub", Label: "ASPIRIN"}}},
		Layout: &appnet.Layout{Width: 800, Height: 600, Positions: map[string]appnet.Position{"hub": {X: 400, Y: 300}}},
		SVG:    "<svg></svg>",
	}
	s.dashboard.On("Network", mock.Anything, "ASPIRIN").Return(view, nil)

	rec := serve(http.MethodGet, "/drugs/{name}/network", s.handler.Graph, "/drugs/ASPIRIN/network")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"selected"`)
	s.Contains(rec.Body.String(), `"positions"`)
	s.NotContains(rec.Body.String(), "<svg>", "svg is for embedding only")
}

func (s *NetworkHandlerTestSuite) TestGraph_NoInteractions() {
	s.dashboard.On("Network", mock.Anything, "WATER").
		Return(&dashboard.NetworkView{Message: dashboard.NoInteractionMsg}, nil)

	rec := serve(http.MethodGet, "/drugs/{name}/network", s.handler.Graph, "/drugs/WATER/network")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"graph":null,"message":"No interactions found"}`, rec.Body.String())
}

func (s *NetworkHandlerTestSuite) TestGraph_BlankName() {
	s.dashboard.On("Network", mock.Anything, "").
		Return(nil, errors.New(errors.ErrCodeDrugNameRequired, "drug name is required"))

	rec := serve(http.MethodGet, "/drugs/{name}/network", s.handler.Graph, "/drugs/%20/network")

	s.Equal(http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	decode(s.T(), rec, &body)
	s.Equal("drug name is required", body.Message)
	s.Zero(s.log.CountLevel("error"))
}

func (s *NetworkHandlerTestSuite) TestDocument() {
	s.dashboard.On("NetworkDocument", mock.Anything, "ACETYLSALICYLIC ACID").
		Return([]byte("<!DOCTYPE html><html></html>"), nil)

	rec := serve(http.MethodGet, "/drugs/{name}/network.html", s.handler.Document, "/drugs/ACETYLSALICYLIC%20ACID/network.html")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(appnet.ContentTypeHTML, rec.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="acetylsalicylic-acid_network.html"`, rec.Header().Get("Content-Disposition"))
	s.Equal("<!DOCTYPE html><html></html>", rec.Body.String())
}

func (s *NetworkHandlerTestSuite) TestDocument_NoInteractions() {
	s.dashboard.On("NetworkDocument", mock.Anything, "WATER").
		Return(nil, errors.New(errors.ErrCodeNoInteractions, dashboard.NoInteractionMsg))

	rec := serve(http.MethodGet, "/drugs/{name}/network.html", s.handler.Document, "/drugs/WATER/network.html")

	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"code":"NET_001","message":"No interactions found"}`, rec.Body.String())
}

func (s *NetworkHandlerTestSuite) TestDocument_RenderFailure() {
	s.dashboard.On("NetworkDocument", mock.Anything, "ASPIRIN").
		Return(nil, errors.New(errors.ErrCodeRenderFailed, "node hub has no position"))

	rec := serve(http.MethodGet, "/drugs/{name}/network.html", s.handler.Document, "/drugs/ASPIRIN/network.html")

	s.Equal(http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	decode(s.T(), rec, &body)
	s.Equal(string(errors.ErrCodeRenderFailed), body.Code)
	s.Equal("network rendering failed", body.Message)
	s.True(s.log.HasMessage("error", "network document failed"))
}

func (s *NetworkHandlerTestSuite) TestExport() {
	res := &appnet.ExportResult{
		Drug:      "ASPIRIN",
		Key:       "networks/aspirin/0b5e.html",
		URL:       "https://minio.local/networks/aspirin/0b5e.html?sig",
		ExpiresAt: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
	}
	s.dashboard.On("Export", mock.Anything, "ASPIRIN").Return(res, nil)

	rec := serve(http.MethodPost, "/drugs/{name}/network/export", s.handler.Export, "/drugs/ASPIRIN/network/export")

	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"key":"networks/aspirin/0b5e.html"`)
}

func (s *NetworkHandlerTestSuite) TestExport_Disabled() {
	s.dashboard.On("Export", mock.Anything, "ASPIRIN").
		Return(nil, errors.New(errors.ErrCodeFeatureDisabled, "network export is not configured"))

	rec := serve(http.MethodPost, "/drugs/{name}/network/export", s.handler.Export, "/drugs/ASPIRIN/network/export")

	s.Equal(http.StatusNotImplemented, rec.Code)
	s.Zero(s.log.CountLevel("error"))
}

func TestNetworkHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(NetworkHandlerTestSuite))
}

//Personal.AI order the ending

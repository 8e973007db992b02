package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/testutil"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

type DrugHandlerTestSuite struct {
	suite.Suite
	catalog   *mockCatalog
	dashboard *mockDashboard
	log       *testutil.MockLogger
	handler   *DrugHandler
}

func (s *DrugHandlerTestSuite) SetupTest() {
	s.catalog = new(mockCatalog)
	s.dashboard = new(mockDashboard)
	s.log = testutil.NewMockLogger()
	s.handler = NewDrugHandler(s.catalog, s.dashboard, s.log)
}

func (s *DrugHandlerTestSuite) TearDownTest() {
	s.catalog.AssertExpectations(s.T())
	s.dashboard.AssertExpectations(s.T())
}

func (s *DrugHandlerTestSuite) TestSearch_ReturnsRows() {
	rows := []drug.DrugSummary{{Name: "ASPIRIN", MaxPhase: intPtr(4)}}
	s.catalog.On("Search", mock.Anything, "asp").Return(catalog.Ok(rows))

	rec := serve(http.MethodGet, "/drugs/search", s.handler.Search, "/drugs/search?q=asp")

	s.Equal(http.StatusOK, rec.Code)
	var body struct {
		Data    []drug.DrugSummary `json:"data"`
		Message string             `json:"message"`
	}
	decode(s.T(), rec, &body)
	s.Equal(rows, body.Data)
	s.Empty(body.Message)
}

func (s *DrugHandlerTestSuite) TestSearch_FaultIsNoData() {
	s.catalog.On("Search", mock.Anything, "asp").
		Return(catalog.Failed[[]drug.DrugSummary](catalog.Diagnostic{Operation: "search", Message: "query failed"}))

	rec := serve(http.MethodGet, "/drugs/search", s.handler.Search, "/drugs/search?q=asp")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":[],"message":"No data available"}`, rec.Body.String())
}

func (s *DrugHandlerTestSuite) TestTop() {
	s.catalog.On("TopDrugs", mock.Anything).Return(catalog.Ok([]drug.DrugSummary{{Name: "ASPIRIN"}}))

	rec := serve(http.MethodGet, "/drugs/top", s.handler.Top, "/drugs/top")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"drug_name":"ASPIRIN"`)
}

func (s *DrugHandlerTestSuite) TestDetail_UnknownDrug() {
	s.catalog.On("Detail", mock.Anything, "NOPE").Return(catalog.Ok[*drug.DrugDetail](nil))

	rec := serve(http.MethodGet, "/drugs/{name}", s.handler.Detail, "/drugs/NOPE")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"data":null,"message":"No data available"}`, rec.Body.String())
}

func (s *DrugHandlerTestSuite) TestProperties() {
	props := &drug.PropertyRecord{Name: "ASPIRIN", FullMWT: floatPtr(180.16)}
	s.catalog.On("Properties", mock.Anything, "ASPIRIN").Return(catalog.Ok(props))

	rec := serve(http.MethodGet, "/drugs/{name}/properties", s.handler.Properties, "/drugs/ASPIRIN/properties")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"full_mwt":180.16`)
}

func (s *DrugHandlerTestSuite) TestInteractions_PathIsTrimmed() {
	s.catalog.On("Interactions", mock.Anything, "ASPIRIN").Return(catalog.Ok([]drug.InteractionEdge{}))

	rec := serve(http.MethodGet, "/drugs/{name}/interactions", s.handler.Interactions, "/drugs/%20ASPIRIN%20/interactions")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), catalog.NoDataMessage)
}

func (s *DrugHandlerTestSuite) TestDrugLikeness() {
	dl := drug.EvaluateDrugLikeness([]drug.PropertyRecord{{Name: "ASPIRIN", FullMWT: floatPtr(180.16)}})
	s.dashboard.On("DrugLikeness", mock.Anything, "asp").Return(&dl, nil)

	rec := serve(http.MethodGet, "/druglikeness", s.handler.DrugLikeness, "/druglikeness?q=asp")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"compliance"`)
}

func (s *DrugHandlerTestSuite) TestDrugLikeness_ExhaustedRetries() {
	s.dashboard.On("DrugLikeness", mock.Anything, "asp").Return(nil, assert.AnError)

	rec := serve(http.MethodGet, "/druglikeness", s.handler.DrugLikeness, "/druglikeness?q=asp")

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	var body ErrorResponse
	decode(s.T(), rec, &body)
	s.Equal(string(errors.ErrCodeRetryExhausted), body.Code)
	s.NotContains(body.Message, assert.AnError.Error())
	s.True(s.log.HasMessage("error", "druglikeness failed"))
}

func TestDrugHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DrugHandlerTestSuite))
}

//Personal.AI order the ending

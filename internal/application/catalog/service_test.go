package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/memo"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/testutil"
)

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) TopDrugs(ctx context.Context, limit int) ([]drug.DrugSummary, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]drug.DrugSummary)
	return rows, args.Error(1)
}

func (m *mockCatalogRepo) SearchDrugs(ctx context.Context, term string, limit int) ([]drug.DrugSummary, error) {
	args := m.Called(ctx, term, limit)
	rows, _ := args.Get(0).([]drug.DrugSummary)
	return rows, args.Error(1)
}

func (m *mockCatalogRepo) FindDetail(ctx context.Context, name string) (*drug.DrugDetail, error) {
	args := m.Called(ctx, name)
	d, _ := args.Get(0).(*drug.DrugDetail)
	return d, args.Error(1)
}

func (m *mockCatalogRepo) FindMolregno(ctx context.Context, name string) (int64, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *mockCatalogRepo) FindProperties(ctx context.Context, molregno int64) (*drug.PropertyRecord, error) {
	args := m.Called(ctx, molregno)
	p, _ := args.Get(0).(*drug.PropertyRecord)
	return p, args.Error(1)
}

type mockInteractionRepo struct{ mock.Mock }

func (m *mockInteractionRepo) FindSharedMechanisms(ctx context.Context, name string, limit int) ([]drug.InteractionEdge, error) {
	args := m.Called(ctx, name, limit)
	rows, _ := args.Get(0).([]drug.InteractionEdge)
	return rows, args.Error(1)
}

type recordingObserver struct {
	ops  []string
	errs int
}

func (o *recordingObserver) ObserveQuery(op string, _ time.Duration, err error) {
	o.ops = append(o.ops, op)
	if err != nil {
		o.errs++
	}
}

func phase(p int) *int { return &p }

func topList(n int) []drug.DrugSummary {
	out := make([]drug.DrugSummary, n)
	for i := range out {
		out[i] = drug.DrugSummary{Name: "DRUG" + strings.Repeat("X", i), MaxPhase: phase(4)}
	}
	return out
}

type ServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	catalog      *mockCatalogRepo
	interactions *mockInteractionRepo
	observer     *recordingObserver
	logger       *testutil.MockLogger
	svc          *Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.catalog = new(mockCatalogRepo)
	s.interactions = new(mockInteractionRepo)
	s.observer = &recordingObserver{}
	s.logger = testutil.NewMockLogger()
	m := memo.New(memo.NewMemoryStore(0), s.logger)
	s.svc = NewService(s.catalog, s.interactions, m, s.logger, WithObserver(s.observer))
}

func (s *ServiceTestSuite) TearDownTest() {
	s.catalog.AssertExpectations(s.T())
	s.interactions.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestSearch_BlankTermIsPrefixOfTopList() {
	top := topList(50)
	s.catalog.On("TopDrugs", mock.Anything, drug.DefaultTopLimit).Return(top, nil).Once()

	res := s.svc.Search(s.ctx, "   ")
	s.True(res.OK())
	s.Len(res.Data(), drug.DefaultSearchLimit)
	s.Equal(top[:drug.DefaultSearchLimit], res.Data())

	// Shares the memoized top list.
	full := s.svc.TopDrugs(s.ctx)
	s.Equal(top, full.Data())
}

func (s *ServiceTestSuite) TestSearch_BlankTermShortTopList() {
	s.catalog.On("TopDrugs", mock.Anything, drug.DefaultTopLimit).Return(topList(3), nil).Once()

	res := s.svc.Search(s.ctx, "")
	s.Len(res.Data(), 3)
}

func (s *ServiceTestSuite) TestSearch_TrimsAndMemoizes() {
	rows := []drug.DrugSummary{{Name: "ASPIRIN", MaxPhase: phase(4)}}
	s.catalog.On("SearchDrugs", mock.Anything, "asp", drug.DefaultSearchLimit).Return(rows, nil).Once()

	first := s.svc.Search(s.ctx, " asp ")
	second := s.svc.Search(s.ctx, "ASP")

	s.Equal(rows, first.Data())
	s.Equal(rows, second.Data())
	s.Equal([]string{OpSearch}, s.observer.ops)
}

func (s *ServiceTestSuite) TestSearch_FailureIsSoft() {
	s.catalog.On("SearchDrugs", mock.Anything, "asp", drug.DefaultSearchLimit).
		Return(nil, errors.New("connection refused")).Twice()

	res := s.svc.Search(s.ctx, "asp")
	s.False(res.OK())
	s.True(res.Empty())
	s.Nil(res.Data())
	s.Equal(OpSearch, res.Diagnostic().Operation)
	s.EqualError(res.Diagnostic().Cause, "connection refused")

	msg, ok := s.logger.Find("error", "drug search failed")
	s.Require().True(ok)
	op, _ := msg.Field("operation")
	s.Equal(OpSearch, op)
	arg, _ := msg.Field("drug")
	s.Equal("asp", arg)

	// Failures are not memoized.
	s.False(s.svc.Search(s.ctx, "asp").OK())
	s.Equal(2, s.observer.errs)
}

func (s *ServiceTestSuite) TestSearch_BlankTermTopFailure() {
	s.catalog.On("TopDrugs", mock.Anything, drug.DefaultTopLimit).Return(nil, errors.New("timeout")).Once()

	res := s.svc.Search(s.ctx, "")
	s.False(res.OK())
	s.Equal(OpSearch, res.Diagnostic().Operation)
}

func (s *ServiceTestSuite) TestDetail_CaseInsensitiveShareEntry() {
	d := &drug.DrugDetail{Name: "ASPIRIN", MaxPhase: phase(4)}
	s.catalog.On("FindDetail", mock.Anything, "Aspirin").Return(d, nil).Once()

	a := s.svc.Detail(s.ctx, "Aspirin")
	b := s.svc.Detail(s.ctx, "aspirin")
	s.Equal("ASPIRIN", a.Data().Name)
	s.Equal("ASPIRIN", b.Data().Name)
}

func (s *ServiceTestSuite) TestDetail_NotFoundIsEmpty() {
	s.catalog.On("FindDetail", mock.Anything, "Nonexistentium").Return(nil, nil).Once()

	res := s.svc.Detail(s.ctx, "Nonexistentium")
	s.True(res.OK())
	s.True(res.Empty())

	// Not-found results are memoized too.
	s.True(s.svc.Detail(s.ctx, "nonexistentium").Empty())
}

func (s *ServiceTestSuite) TestDetail_BlankNameSkipsQuery() {
	s.True(s.svc.Detail(s.ctx, " ").Empty())
}

func (s *ServiceTestSuite) TestProperties_TwoSteps() {
	hba := 4
	s.catalog.On("FindMolregno", mock.Anything, "Aspirin").Return(int64(1), true, nil).Once()
	s.catalog.On("FindProperties", mock.Anything, int64(1)).Return(&drug.PropertyRecord{HBA: &hba}, nil).Once()

	res := s.svc.Properties(s.ctx, "Aspirin")
	s.Require().True(res.OK())
	s.Equal("Aspirin", res.Data().Name)
	s.Equal(4, *res.Data().HBA)
}

func (s *ServiceTestSuite) TestProperties_NameIsCanonicalWhateverTheCasing() {
	s.catalog.On("FindMolregno", mock.Anything, "aspirin").Return(int64(1), true, nil).Once()
	s.catalog.On("FindProperties", mock.Anything, int64(1)).Return(&drug.PropertyRecord{Name: "ASPIRIN"}, nil).Once()

	first := s.svc.Properties(s.ctx, "aspirin")
	s.Require().True(first.OK())
	s.Equal("ASPIRIN", first.Data().Name)

	cached := s.svc.Properties(s.ctx, "Aspirin")
	s.Require().True(cached.OK())
	s.Equal("ASPIRIN", cached.Data().Name)
}

func (s *ServiceTestSuite) TestProperties_UnknownDrugIsEmpty() {
	s.catalog.On("FindMolregno", mock.Anything, "Unknown Drug").Return(int64(0), false, nil).Once()

	res := s.svc.Properties(s.ctx, "Unknown Drug")
	s.True(res.OK())
	s.True(res.Empty())
	s.catalog.AssertNotCalled(s.T(), "FindProperties", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestProperties_NoPropertyRowIsEmpty() {
	s.catalog.On("FindMolregno", mock.Anything, "Trialumab").Return(int64(9), true, nil).Once()
	s.catalog.On("FindProperties", mock.Anything, int64(9)).Return(nil, nil).Once()

	s.True(s.svc.Properties(s.ctx, "Trialumab").Empty())
}

func (s *ServiceTestSuite) TestProperties_SecondStepFailure() {
	s.catalog.On("FindMolregno", mock.Anything, "Aspirin").Return(int64(1), true, nil).Once()
	s.catalog.On("FindProperties", mock.Anything, int64(1)).Return(nil, errors.New("boom")).Once()

	res := s.svc.Properties(s.ctx, "Aspirin")
	s.False(res.OK())
	s.Equal(OpProperties, res.Diagnostic().Operation)
}

func (s *ServiceTestSuite) TestInteractions_DropsSelfAndCaps() {
	rows := []drug.InteractionEdge{{InteractingDrug: "ASPIRIN", Mechanism: "Cyclooxygenase inhibitor"}}
	for i := 0; i < 60; i++ {
		rows = append(rows, drug.InteractionEdge{InteractingDrug: "PEER", Mechanism: "Cyclooxygenase inhibitor"})
	}
	s.interactions.On("FindSharedMechanisms", mock.Anything, "Aspirin", drug.MaxInteractions).Return(rows, nil).Once()

	res := s.svc.Interactions(s.ctx, "Aspirin")
	s.Require().True(res.OK())
	s.Len(res.Data(), drug.MaxInteractions)
	for _, r := range res.Data() {
		s.False(drug.SameDrug(r.InteractingDrug, "Aspirin"))
	}
}

func (s *ServiceTestSuite) TestInteractions_NoMechanismsIsEmpty() {
	s.interactions.On("FindSharedMechanisms", mock.Anything, "Preclinostat", drug.MaxInteractions).
		Return([]drug.InteractionEdge{}, nil).Once()

	res := s.svc.Interactions(s.ctx, "Preclinostat")
	s.True(res.OK())
	s.True(res.Empty())
}

func (s *ServiceTestSuite) TestInteractions_BlankName() {
	res := s.svc.Interactions(s.ctx, "")
	s.True(res.OK())
	s.NotNil(res.Data())
	s.Empty(res.Data())
}

func (s *ServiceTestSuite) TestInteractions_Failure() {
	s.interactions.On("FindSharedMechanisms", mock.Anything, "Aspirin", drug.MaxInteractions).
		Return(nil, errors.New("relation does not exist")).Once()

	res := s.svc.Interactions(s.ctx, "Aspirin")
	s.False(res.OK())
	s.True(s.logger.HasMessage("error", "interaction lookup failed"))
}

func (s *ServiceTestSuite) TestPropertiesBatch_SkipsMissing() {
	mw := 180.16
	s.catalog.On("FindMolregno", mock.Anything, "Aspirin").Return(int64(1), true, nil).Once()
	s.catalog.On("FindProperties", mock.Anything, int64(1)).Return(&drug.PropertyRecord{FullMWT: &mw}, nil).Once()
	s.catalog.On("FindMolregno", mock.Anything, "Unknown").Return(int64(0), false, nil).Once()
	s.catalog.On("FindMolregno", mock.Anything, "Broken").Return(int64(0), false, errors.New("boom")).Once()

	res := s.svc.PropertiesBatch(s.ctx, []string{"Aspirin", "Unknown", "Broken"})
	s.Require().True(res.OK())
	s.Require().Len(res.Data(), 1)
	s.Equal("Aspirin", res.Data()[0].Name)
}

func (s *ServiceTestSuite) TestPropertiesBatch_AllFailed() {
	s.catalog.On("FindMolregno", mock.Anything, "Broken").Return(int64(0), false, errors.New("boom")).Once()

	res := s.svc.PropertiesBatch(s.ctx, []string{"Broken"})
	s.False(res.OK())
}

func (s *ServiceTestSuite) TestPropertiesBatch_Empty() {
	res := s.svc.PropertiesBatch(s.ctx, nil)
	s.True(res.OK())
	s.True(res.Empty())
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestResultEmpty(t *testing.T) {
	assert.True(t, Ok[[]string](nil).Empty())
	assert.True(t, Ok([]string{}).Empty())
	assert.False(t, Ok([]string{"a"}).Empty())
	assert.True(t, Ok[*drug.DrugDetail](nil).Empty())
	assert.False(t, Ok(&drug.DrugDetail{}).Empty())

	f := Failed[[]string](Diagnostic{Operation: OpSearch, Message: NoDataMessage, Cause: errors.New("x")})
	assert.True(t, f.Empty())
	assert.False(t, f.OK())
	assert.EqualError(t, f.Err(), "search: No data available: x")
	assert.NoError(t, Ok(1).Err())
}

//Personal.AI order the ending

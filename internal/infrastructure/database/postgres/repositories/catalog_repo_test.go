package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

var detailColumns = []string{
	"drug_name", "max_phase", "therapeutic_flag", "molecule_type", "first_approval",
	"oral", "parenteral", "topical", "black_box_warning", "natural_product",
	"first_in_class", "chirality",
}

var propertyColumns = []string{
	"pref_name", "alogp", "hba", "hbd", "psa", "aromatic_rings", "qed_weighted", "mw_freebase", "full_mwt",
}

type CatalogRepoTestSuite struct {
	suite.Suite
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo drug.CatalogRepository
}

func (s *CatalogRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	log := logging.NewNopLogger()
	s.repo = NewPostgresCatalogRepo(postgres.NewConnectionWithDB(s.db, log), log)
}

func (s *CatalogRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *CatalogRepoTestSuite) TestTopDrugs_OrderAndLimit() {
	s.mock.ExpectQuery(regexp.QuoteMeta("AND md.max_phase IN (3, 4) AND md.therapeutic_flag = 1 ORDER BY md.max_phase DESC, md.pref_name")).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"drug_name", "max_phase"}).
			AddRow("ASPIRIN", 4.0).
			AddRow("IBUPROFEN", 4.0).
			AddRow("TRIALUMAB", 3.0))

	out, err := s.repo.TopDrugs(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Len(out, 3)
	s.Equal("ASPIRIN", out[0].Name)
	s.Equal(4, out[0].Phase())
	s.Equal(3, out[2].Phase())
}

func (s *CatalogRepoTestSuite) TestTopDrugs_Empty() {
	s.mock.ExpectQuery("SELECT DISTINCT md.pref_name").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"drug_name", "max_phase"}))

	out, err := s.repo.TopDrugs(context.Background(), 50)
	s.NoError(err)
	s.NotNil(out)
	s.Empty(out)
}

func (s *CatalogRepoTestSuite) TestTopDrugs_QueryError() {
	s.mock.ExpectQuery("SELECT DISTINCT md.pref_name").
		WillReturnError(errors.New("connection reset"))

	out, err := s.repo.TopDrugs(context.Background(), 50)
	s.Nil(out)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
}

func (s *CatalogRepoTestSuite) TestSearchDrugs_WrapsTermInWildcards() {
	s.mock.ExpectQuery(regexp.QuoteMeta("md.pref_name ILIKE $1")).
		WithArgs("%asp%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"drug_name", "max_phase"}).
			AddRow("ASPIRIN", 4.0).
			AddRow("ASPARAGINASE", nil))

	out, err := s.repo.SearchDrugs(context.Background(), "  asp ", 0)
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Nil(out[1].MaxPhase)
	s.Equal(-1, out[1].Phase())
}

func (s *CatalogRepoTestSuite) TestSearchDrugs_FractionalPhase() {
	s.mock.ExpectQuery("ILIKE").
		WithArgs("%x%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"drug_name", "max_phase"}).AddRow("XDRUG", 0.5))

	out, err := s.repo.SearchDrugs(context.Background(), "x", 10)
	s.Require().NoError(err)
	s.Equal(0, out[0].Phase())
}

func (s *CatalogRepoTestSuite) TestSearchDrugs_ScanError() {
	s.mock.ExpectQuery("ILIKE").
		WillReturnRows(sqlmock.NewRows([]string{"drug_name", "max_phase"}).AddRow(nil, 4.0))

	_, err := s.repo.SearchDrugs(context.Background(), "a", 10)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
}

func (s *CatalogRepoTestSuite) TestFindDetail_Found() {
	s.mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(md.pref_name) = LOWER($1)")).
		WithArgs("aspirin").
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow("ASPIRIN", 4.0, 1, "Small molecule", 1950, 1, 0, 0, 0, 0, -1, 2))

	d, err := s.repo.FindDetail(context.Background(), "aspirin")
	s.Require().NoError(err)
	s.Require().NotNil(d)
	s.Equal("ASPIRIN", d.Name)
	s.Equal(4, *d.MaxPhase)
	s.True(*d.TherapeuticFlag)
	s.Equal("Small molecule", *d.MoleculeType)
	s.Equal(1950, *d.FirstApproval)
	s.Equal([]string{"oral"}, d.Routes())
	s.False(*d.BlackBoxWarning)
	s.Nil(d.FirstInClass)
	s.Equal("achiral", d.ChiralityLabel())
}

func (s *CatalogRepoTestSuite) TestFindDetail_NullColumns() {
	s.mock.ExpectQuery("FROM molecule_dictionary md").
		WithArgs("TRIALUMAB").
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow("TRIALUMAB", 3.0, 1, nil, nil, 0, 1, 0, 0, 0, 0, nil))

	d, err := s.repo.FindDetail(context.Background(), "TRIALUMAB")
	s.Require().NoError(err)
	s.Nil(d.MoleculeType)
	s.Nil(d.FirstApproval)
	s.Nil(d.Chirality)
	s.Equal("unknown", d.ChiralityLabel())
}

func (s *CatalogRepoTestSuite) TestFindDetail_NotFound() {
	s.mock.ExpectQuery("FROM molecule_dictionary md").
		WithArgs("Nonexistentium").
		WillReturnRows(sqlmock.NewRows(detailColumns))

	d, err := s.repo.FindDetail(context.Background(), "Nonexistentium")
	s.NoError(err)
	s.Nil(d)
}

func (s *CatalogRepoTestSuite) TestFindDetail_Error() {
	s.mock.ExpectQuery("FROM molecule_dictionary md").
		WillReturnError(errors.New("statement timeout"))

	d, err := s.repo.FindDetail(context.Background(), "Aspirin")
	s.Nil(d)
	s.Require().Error(err)
	s.Contains(err.Error(), "Aspirin")
}

func (s *CatalogRepoTestSuite) TestFindMolregno() {
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT molregno FROM molecule_dictionary WHERE LOWER(pref_name) = LOWER($1)")).
		WithArgs("Aspirin").
		WillReturnRows(sqlmock.NewRows([]string{"molregno"}).AddRow(int64(1)))

	id, ok, err := s.repo.FindMolregno(context.Background(), "Aspirin")
	s.NoError(err)
	s.True(ok)
	s.Equal(int64(1), id)
}

func (s *CatalogRepoTestSuite) TestFindMolregno_Missing() {
	s.mock.ExpectQuery("SELECT molregno").
		WillReturnRows(sqlmock.NewRows([]string{"molregno"}))

	_, ok, err := s.repo.FindMolregno(context.Background(), "Nonexistentium")
	s.NoError(err)
	s.False(ok)
}

func (s *CatalogRepoTestSuite) TestFindProperties_Found() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM compound_properties cp JOIN molecule_dictionary md ON md.molregno = cp.molregno WHERE cp.molregno = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow("ASPIRIN", 1.31, 3, 1, 63.6, 1, 0.55, 180.16, 180.16))

	p, err := s.repo.FindProperties(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Equal("ASPIRIN", p.Name)
	s.InDelta(1.31, *p.ALogP, 1e-9)
	s.Equal(3, *p.HBA)
	s.Equal(1, *p.HBD)
	s.InDelta(180.16, *p.FullMWT, 1e-9)
}

func (s *CatalogRepoTestSuite) TestFindProperties_PartialRow() {
	s.mock.ExpectQuery("FROM compound_properties").
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow("METFORMIN", nil, 3, nil, 63.6, nil, nil, 180.16, nil))

	p, err := s.repo.FindProperties(context.Background(), 1)
	s.Require().NoError(err)
	s.Nil(p.ALogP)
	s.Nil(p.HBD)
	s.Nil(p.FullMWT)
	s.Equal(3, *p.HBA)
}

func (s *CatalogRepoTestSuite) TestFindProperties_NoRow() {
	s.mock.ExpectQuery("FROM compound_properties").
		WillReturnRows(sqlmock.NewRows(propertyColumns))

	p, err := s.repo.FindProperties(context.Background(), 42)
	s.NoError(err)
	s.Nil(p)
}

func TestCatalogRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepoTestSuite))
}

//Personal.AI order the ending

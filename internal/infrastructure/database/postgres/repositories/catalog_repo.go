package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

const (
	queryTopDrugs = `
		SELECT DISTINCT md.pref_name AS drug_name, md.max_phase
		FROM molecule_dictionary md
		WHERE md.pref_name IS NOT NULL
		  AND md.max_phase IN (3, 4)
		  AND md.therapeutic_flag = 1
		ORDER BY md.max_phase DESC, md.pref_name
		LIMIT $1`

	querySearchDrugs = `
		SELECT DISTINCT md.pref_name AS drug_name, md.max_phase
		FROM molecule_dictionary md
		WHERE md.pref_name IS NOT NULL
		  AND md.pref_name ILIKE $1
		  AND md.therapeutic_flag = 1
		ORDER BY md.max_phase DESC, md.pref_name
		LIMIT $2`

	queryDrugDetail = `
		SELECT md.pref_name AS drug_name, md.max_phase, md.therapeutic_flag,
		       md.molecule_type, md.first_approval, md.oral, md.parenteral,
		       md.topical, md.black_box_warning, md.natural_product,
		       md.first_in_class, md.chirality
		FROM molecule_dictionary md
		WHERE LOWER(md.pref_name) = LOWER($1)
		LIMIT 1`

	queryMolregno = `
		SELECT molregno
		FROM molecule_dictionary
		WHERE LOWER(pref_name) = LOWER($1)
		LIMIT 1`

	queryProperties = `
		SELECT md.pref_name, cp.alogp, cp.hba, cp.hbd, cp.psa, cp.aromatic_rings,
		       cp.qed_weighted, cp.mw_freebase, cp.full_mwt
		FROM compound_properties cp
		JOIN molecule_dictionary md ON md.molregno = cp.molregno
		WHERE cp.molregno = $1`
)

type postgresCatalogRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresCatalogRepo returns a drug.CatalogRepository reading the ChEMBL
// molecule_dictionary and compound_properties tables.
func NewPostgresCatalogRepo(conn *postgres.Connection, log logging.Logger) drug.CatalogRepository {
	return &postgresCatalogRepo{
		conn:     conn,
		log:      log.Named("catalog_repo"),
		executor: conn.DB(),
	}
}

func (r *postgresCatalogRepo) TopDrugs(ctx context.Context, limit int) ([]drug.DrugSummary, error) {
	if limit <= 0 {
		limit = drug.DefaultTopLimit
	}
	return r.listSummaries(ctx, "top_drugs", queryTopDrugs, limit)
}

func (r *postgresCatalogRepo) SearchDrugs(ctx context.Context, term string, limit int) ([]drug.DrugSummary, error) {
	if limit <= 0 {
		limit = drug.DefaultSearchLimit
	}
	return r.listSummaries(ctx, "search_drugs", querySearchDrugs, "%"+drug.NormalizeName(term)+"%", limit)
}

func (r *postgresCatalogRepo) listSummaries(ctx context.Context, op, query string, args ...interface{}) ([]drug.DrugSummary, error) {
	start := time.Now()
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), op, time.Since(start), 0, err)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list drugs")
	}
	defer rows.Close()

	out := make([]drug.DrugSummary, 0)
	for rows.Next() {
		var (
			name  string
			phase sql.NullFloat64
		)
		if err := rows.Scan(&name, &phase); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan drug summary")
		}
		out = append(out, drug.DrugSummary{Name: name, MaxPhase: roundedIntPtr(phase)})
	}
	if err := rows.Err(); err != nil {
		logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), op, time.Since(start), len(out), err)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate drugs")
	}

	logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), op, time.Since(start), len(out), nil)
	return out, nil
}

func (r *postgresCatalogRepo) FindDetail(ctx context.Context, name string) (*drug.DrugDetail, error) {
	start := time.Now()
	d, err := scanDetail(r.executor.QueryRowContext(ctx, queryDrugDetail, drug.NormalizeName(name)))
	if err == sql.ErrNoRows {
		logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), "drug_detail", time.Since(start), 0, nil)
		return nil, nil
	}
	if err != nil {
		logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), "drug_detail", time.Since(start), 0, err)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query drug detail").WithDetail(name)
	}
	logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), "drug_detail", time.Since(start), 1, nil)
	return d, nil
}

func scanDetail(row scanner) (*drug.DrugDetail, error) {
	var (
		name                                        string
		phase                                       sql.NullFloat64
		therapeutic, oral, parenteral, topical      sql.NullInt64
		blackBox, natural, firstInClass, chirality sql.NullInt64
		firstApproval                               sql.NullInt64
		moleculeType                                sql.NullString
	)
	if err := row.Scan(&name, &phase, &therapeutic, &moleculeType, &firstApproval,
		&oral, &parenteral, &topical, &blackBox, &natural, &firstInClass, &chirality); err != nil {
		return nil, err
	}
	return &drug.DrugDetail{
		Name:            name,
		MaxPhase:        roundedIntPtr(phase),
		TherapeuticFlag: flagPtr(therapeutic),
		MoleculeType:    stringPtr(moleculeType),
		FirstApproval:   intPtr(firstApproval),
		Oral:            flagPtr(oral),
		Parenteral:      flagPtr(parenteral),
		Topical:         flagPtr(topical),
		BlackBoxWarning: flagPtr(blackBox),
		NaturalProduct:  flagPtr(natural),
		FirstInClass:    flagPtr(firstInClass),
		Chirality:       intPtr(chirality),
	}, nil
}

func (r *postgresCatalogRepo) FindMolregno(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := r.executor.QueryRowContext(ctx, queryMolregno, drug.NormalizeName(name)).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		r.log.Error("failed to resolve molregno", logging.String(logging.FieldDrug, name), logging.Err(err))
		return 0, false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to resolve molecule id").WithDetail(name)
	}
	return id, true, nil
}

func (r *postgresCatalogRepo) FindProperties(ctx context.Context, molregno int64) (*drug.PropertyRecord, error) {
	start := time.Now()
	var (
		name                             sql.NullString
		alogp, psa, qed, mwFree, fullMWT sql.NullFloat64
		hba, hbd, rings                  sql.NullInt64
	)
	err := r.executor.QueryRowContext(ctx, queryProperties, molregno).
		Scan(&name, &alogp, &hba, &hbd, &psa, &rings, &qed, &mwFree, &fullMWT)
	if err == sql.ErrNoRows {
		logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), "compound_properties", time.Since(start), 0, nil)
		return nil, nil
	}
	if err != nil {
		logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), "compound_properties", time.Since(start), 0, err)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query compound properties")
	}
	logging.LogDatabaseQuery(logging.FromContext(ctx, r.log), "compound_properties", time.Since(start), 1, nil)

	return &drug.PropertyRecord{
		Name:          name.String,
		ALogP:         floatPtr(alogp),
		HBA:           intPtr(hba),
		HBD:           intPtr(hbd),
		PSA:           floatPtr(psa),
		AromaticRings: intPtr(rings),
		QEDWeighted:   floatPtr(qed),
		MWFreebase:    floatPtr(mwFree),
		FullMWT:       floatPtr(fullMWT),
	}, nil
}

//Personal.AI order the ending

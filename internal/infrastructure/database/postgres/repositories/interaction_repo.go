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

// querySharedMechanisms finds every other drug with a mechanism_of_action
// string equal to one recorded for $1. Matching is exact on the string.
const querySharedMechanisms = `
	WITH selected_drug_mechanisms AS (
		SELECT DISTINCT dm.mechanism_of_action
		FROM drug_mechanism dm
		JOIN molecule_dictionary md ON dm.molregno = md.molregno
		WHERE LOWER(md.pref_name) = LOWER($1)
	)
	SELECT DISTINCT
		md.pref_name AS interacting_drug,
		dm.mechanism_of_action,
		dm.action_type,
		td.pref_name AS target_name,
		td.organism AS target_organism
	FROM drug_mechanism dm
	JOIN molecule_dictionary md ON dm.molregno = md.molregno
	JOIN target_dictionary td ON dm.tid = td.tid
	WHERE EXISTS (
		SELECT 1 FROM selected_drug_mechanisms sdm
		WHERE dm.mechanism_of_action = sdm.mechanism_of_action
	)
	AND LOWER(md.pref_name) != LOWER($1)
	ORDER BY interacting_drug
	LIMIT $2`

type postgresInteractionRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresInteractionRepo returns a drug.InteractionRepository over the
// drug_mechanism and target_dictionary tables.
func NewPostgresInteractionRepo(conn *postgres.Connection, log logging.Logger) drug.InteractionRepository {
	return &postgresInteractionRepo{
		conn:     conn,
		log:      log.Named("interaction_repo"),
		executor: conn.DB(),
	}
}

func (r *postgresInteractionRepo) FindSharedMechanisms(ctx context.Context, name string, limit int) ([]drug.InteractionEdge, error) {
	if limit <= 0 || limit > drug.MaxInteractions {
		limit = drug.MaxInteractions
	}
	selected := drug.NormalizeName(name)
	log := logging.FromContext(ctx, r.log).With(logging.String(logging.FieldDrug, selected))

	start := time.Now()
	rows, err := r.executor.QueryContext(ctx, querySharedMechanisms, selected, limit)
	if err != nil {
		logging.LogDatabaseQuery(log, "shared_mechanisms", time.Since(start), 0, err)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query interactions").WithDetail(selected)
	}
	defer rows.Close()

	out := make([]drug.InteractionEdge, 0)
	for rows.Next() {
		var (
			peer, mechanism                  sql.NullString
			actionType, target, targetOrgnsm sql.NullString
		)
		if err := rows.Scan(&peer, &mechanism, &actionType, &target, &targetOrgnsm); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan interaction")
		}
		out = append(out, drug.InteractionEdge{
			SelectedDrug:    selected,
			InteractingDrug: peer.String,
			Mechanism:       mechanism.String,
			ActionType:      stringPtr(actionType),
			TargetName:      stringPtr(target),
			TargetOrganism:  stringPtr(targetOrgnsm),
		})
	}
	if err := rows.Err(); err != nil {
		logging.LogDatabaseQuery(log, "shared_mechanisms", time.Since(start), len(out), err)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate interactions")
	}

	logging.LogDatabaseQuery(log, "shared_mechanisms", time.Since(start), len(out), nil)
	return out, nil
}

//Personal.AI order the ending

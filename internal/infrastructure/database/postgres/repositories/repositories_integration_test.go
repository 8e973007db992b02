//go:build integration

package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/postgres/repositories"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/testutil"
)

func setupCatalog(t *testing.T) (drug.CatalogRepository, drug.InteractionRepository) {
	t.Helper()
	cfg := testutil.StartPostgres(t)
	log := logging.NewNopLogger()

	require.NoError(t, postgres.NewMigrator(cfg, log).Up())

	conn, err := postgres.NewConnection(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return repositories.NewPostgresCatalogRepo(conn, log), repositories.NewPostgresInteractionRepo(conn, log)
}

func TestCatalogAgainstSampleData(t *testing.T) {
	catalog, interactions := setupCatalog(t)
	ctx := context.Background()

	t.Run("top drugs are phase 3 or 4 therapeutics ordered by phase then name", func(t *testing.T) {
		top, err := catalog.TopDrugs(ctx, drug.DefaultTopLimit)
		require.NoError(t, err)
		require.NotEmpty(t, top)
		for _, d := range top {
			assert.Contains(t, []int{3, 4}, d.Phase())
			assert.NotEqual(t, "PRECLINOSTAT", d.Name)
		}
		assert.Equal(t, "TRIALUMAB", top[len(top)-1].Name)
		assert.Equal(t, "ASPIRIN", top[0].Name)
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		hits, err := catalog.SearchDrugs(ctx, "statin", drug.DefaultSearchLimit)
		require.NoError(t, err)
		names := make([]string, 0, len(hits))
		for _, h := range hits {
			names = append(names, h.Name)
		}
		assert.Equal(t, []string{"ATORVASTATIN", "SIMVASTATIN"}, names)
	})

	t.Run("detail matches mixed case", func(t *testing.T) {
		d, err := catalog.FindDetail(ctx, "aSpIrIn")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "ASPIRIN", d.Name)
		assert.Equal(t, []string{"oral"}, d.Routes())
	})

	t.Run("properties via molregno", func(t *testing.T) {
		id, ok, err := catalog.FindMolregno(ctx, "Metformin")
		require.NoError(t, err)
		require.True(t, ok)
		p, err := catalog.FindProperties(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, 3, *p.HBD)
		assert.Equal(t, "METFORMIN", p.Name)
	})

	t.Run("unknown drug", func(t *testing.T) {
		d, err := catalog.FindDetail(ctx, "Nonexistentium")
		assert.NoError(t, err)
		assert.Nil(t, d)
		_, ok, err := catalog.FindMolregno(ctx, "Nonexistentium")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("shared mechanisms exclude the selected drug", func(t *testing.T) {
		rows, err := interactions.FindSharedMechanisms(ctx, "aspirin", drug.MaxInteractions)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		for _, r := range rows {
			assert.NotEqual(t, "ASPIRIN", r.InteractingDrug)
			assert.Equal(t, "Cyclooxygenase inhibitor", r.Mechanism)
		}
		assert.Equal(t, "IBUPROFEN", rows[0].InteractingDrug)
	})

	t.Run("unique mechanism has no peers", func(t *testing.T) {
		rows, err := interactions.FindSharedMechanisms(ctx, "Metformin", drug.MaxInteractions)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

//Personal.AI order the ending

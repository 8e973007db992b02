package drug

import "context"

// CatalogRepository reads the drug catalog. Lookups that find nothing
// return (nil, nil) or an empty slice; only execution faults are errors.
type CatalogRepository interface {
	// TopDrugs returns therapeutic drugs in phase 3 or 4, ordered by phase
	// descending then name ascending.
	TopDrugs(ctx context.Context, limit int) ([]DrugSummary, error)

	// SearchDrugs returns therapeutic drugs whose name contains term
	// (case-insensitive), in the TopDrugs order.
	SearchDrugs(ctx context.Context, term string, limit int) ([]DrugSummary, error)

	// FindDetail matches the preferred name case-insensitively.
	FindDetail(ctx context.Context, name string) (*DrugDetail, error)

	// FindMolregno resolves a name to the internal molecule id.
	// The boolean is false when no molecule matches.
	FindMolregno(ctx context.Context, name string) (int64, bool, error)

	// FindProperties returns the compound_properties row for molregno.
	FindProperties(ctx context.Context, molregno int64) (*PropertyRecord, error)
}

// InteractionRepository discovers drugs sharing a mechanism of action.
type InteractionRepository interface {
	// FindSharedMechanisms returns distinct rows of every other drug whose
	// mechanism string equals one recorded for name, ordered by interacting
	// drug name, at most limit rows.
	FindSharedMechanisms(ctx context.Context, name string, limit int) ([]InteractionEdge, error)
}

//Personal.AI order the ending

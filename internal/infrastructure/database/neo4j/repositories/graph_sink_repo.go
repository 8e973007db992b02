package repositories

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	driver "github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/neo4j"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// GraphSink mirrors interaction graphs into Neo4j so they can be explored
// with Cypher next to the dashboard.
type GraphSink interface {
	EnsureConstraints(ctx context.Context) error
	MirrorNetwork(ctx context.Context, g *network.Graph) (*MirrorStats, error)
	Peers(ctx context.Context, drug string) ([]PeerLink, error)
}

// MirrorStats counts what one MirrorNetwork call merged.
type MirrorStats struct {
	Mechanisms int `json:"mechanisms"`
	Links      int `json:"links"`
}

// PeerLink is one SHARES_MECHANISM relationship read back from the graph.
type PeerLink struct {
	Drug      string `json:"drug"`
	Mechanism string `json:"mechanism"`
}

var constraintStatements = []string{
	"CREATE CONSTRAINT drug_name IF NOT EXISTS FOR (d:Drug) REQUIRE d.name IS UNIQUE",
	"CREATE CONSTRAINT mechanism_text IF NOT EXISTS FOR (m:Mechanism) REQUIRE m.text IS UNIQUE",
}

const (
	cypherMergeHub = `MERGE (d:Drug {name: $name}) SET d.selected_at = datetime()`

	cypherMergeMechanisms = `
		MATCH (hub:Drug {name: $hub})
		UNWIND $mechanisms AS text
		MERGE (m:Mechanism {text: text})
		MERGE (hub)-[:HAS_MECHANISM]->(m)`

	cypherMergeLinks = `
		MATCH (hub:Drug {name: $hub})
		UNWIND $links AS link
		MERGE (peer:Drug {name: link.drug})
		MERGE (m:Mechanism {text: link.mechanism})
		MERGE (peer)-[:HAS_MECHANISM]->(m)
		MERGE (hub)-[:SHARES_MECHANISM {mechanism: link.mechanism}]->(peer)`

	cypherPeers = `
		MATCH (d:Drug)-[r:SHARES_MECHANISM]-(peer:Drug)
		WHERE toLower(d.name) = toLower($name)
		RETURN DISTINCT peer.name AS drug, r.mechanism AS mechanism
		ORDER BY drug, mechanism`
)

type neo4jGraphSink struct {
	driver driver.DriverInterface
	log    logging.Logger
}

// NewNeo4jGraphSink returns a GraphSink over d.
func NewNeo4jGraphSink(d driver.DriverInterface, log logging.Logger) GraphSink {
	return &neo4jGraphSink{driver: d, log: log.Named("graph_sink")}
}

func (r *neo4jGraphSink) EnsureConstraints(ctx context.Context) error {
	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		for _, stmt := range constraintStatements {
			if _, err := tx.Run(ctx, stmt, nil); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeGraphSinkError, "failed to ensure constraints")
	}
	return nil
}

// MirrorNetwork merges the hub, its mechanisms and one SHARES_MECHANISM
// relationship per (mechanism, peer) leaf. Re-exporting the same graph is
// idempotent.
func (r *neo4jGraphSink) MirrorNetwork(ctx context.Context, g *network.Graph) (*MirrorStats, error) {
	if g == nil {
		return &MirrorStats{}, nil
	}
	links := leafLinks(g)

	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (any, error) {
		if _, err := tx.Run(ctx, cypherMergeHub, map[string]any{"name": g.Selected}); err != nil {
			return nil, err
		}
		if _, err := tx.Run(ctx, cypherMergeMechanisms, map[string]any{"hub": g.Selected, "mechanisms": g.Mechanisms}); err != nil {
			return nil, err
		}
		if _, err := tx.Run(ctx, cypherMergeLinks, map[string]any{"hub": g.Selected, "links": links}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeGraphSinkError, "failed to mirror network").WithDetail(g.Selected)
	}

	stats := &MirrorStats{Mechanisms: len(g.Mechanisms), Links: len(links)}
	r.log.Info("network mirrored",
		logging.String(logging.FieldDrug, g.Selected),
		logging.Int("mechanisms", stats.Mechanisms),
		logging.Int("links", stats.Links),
	)
	return stats, nil
}

// leafLinks flattens the group->leaf edges into Cypher parameters.
func leafLinks(g *network.Graph) []map[string]any {
	byID := make(map[string]network.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	links := make([]map[string]any, 0)
	for _, e := range g.Edges {
		from, to := byID[e.From], byID[e.To]
		if from.Kind != network.KindMechanism || to.Kind != network.KindDrug {
			continue
		}
		links = append(links, map[string]any{
			"drug":      to.Drug,
			"mechanism": from.Mechanism,
		})
	}
	return links
}

func (r *neo4jGraphSink) Peers(ctx context.Context, drug string) ([]PeerLink, error) {
	res, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (any, error) {
		result, err := tx.Run(ctx, cypherPeers, map[string]any{"name": drug})
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, mapPeerLink)
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeGraphSinkError, "failed to read peers").WithDetail(drug)
	}
	links, _ := res.([]PeerLink)
	return links, nil
}

func mapPeerLink(rec *neo4j.Record) (PeerLink, error) {
	name, ok := rec.Get("drug")
	if !ok {
		return PeerLink{}, fmt.Errorf("record missing drug")
	}
	mech, _ := rec.Get("mechanism")
	link := PeerLink{}
	link.Drug, _ = name.(string)
	link.Mechanism, _ = mech.(string)
	return link, nil
}

//Personal.AI order the ending

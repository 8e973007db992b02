// Package network places and renders interaction graphs built by the domain
// network package, and exports the rendered document to object storage.
package network

import (
	"math"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

const barnesHutTheta = 0.2

// Position is a node centre in canvas pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout holds the canvas size and one position per node id.
type Layout struct {
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Positions map[string]Position `json:"positions"`
}

// Layouter runs a force-directed layout and fits the result into a canvas.
type Layouter struct {
	cfg config.NetworkConfig
}

// NewLayouter returns a Layouter. Zero fields of cfg take the config defaults.
func NewLayouter(cfg config.NetworkConfig) *Layouter {
	if cfg.LayoutUpdates <= 0 {
		cfg.LayoutUpdates = config.DefaultNetworkLayoutUpdates
	}
	if cfg.Repulsion <= 0 {
		cfg.Repulsion = config.DefaultNetworkRepulsion
	}
	if cfg.Rate <= 0 {
		cfg.Rate = config.DefaultNetworkRate
	}
	if cfg.Width <= 0 {
		cfg.Width = config.DefaultNetworkWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = config.DefaultNetworkHeight
	}
	if cfg.LevelSeparation <= 0 {
		cfg.LevelSeparation = config.DefaultNetworkLevelSeparation
	}
	if cfg.NodeSpacing <= 0 {
		cfg.NodeSpacing = config.DefaultNetworkNodeSpacing
	}
	return &Layouter{cfg: cfg}
}

// Layout positions every node of g.
func (l *Layouter) Layout(g *domainNet.Graph) (*Layout, error) {
	if g == nil || len(g.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeLayoutFailed, "graph has no nodes")
	}

	index := make(map[string]int64, len(g.Nodes))
	ug := simple.NewUndirectedGraph()
	for i, n := range g.Nodes {
		index[n.ID] = int64(i)
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		from, okFrom := index[e.From]
		to, okTo := index[e.To]
		if !okFrom || !okTo {
			return nil, errors.Newf(errors.ErrCodeLayoutFailed, "edge %s -> %s references an unknown node", e.From, e.To)
		}
		if from == to {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	eades := layout.EadesR2{
		Updates:   l.cfg.LayoutUpdates,
		Repulsion: l.cfg.Repulsion,
		Rate:      l.cfg.Rate,
		Theta:     barnesHutTheta,
	}
	optimizer := layout.NewOptimizerR2(ug, eades.Update)
	for optimizer.Update() {
	}

	raw := make([]r2.Vec, len(g.Nodes))
	for i := range g.Nodes {
		v := optimizer.Coord2(int64(i))
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return nil, errors.Newf(errors.ErrCodeLayoutFailed, "layout diverged at node %s", g.Nodes[i].ID)
		}
		raw[i] = v
	}

	width, height := l.canvas(g)
	out := &Layout{Width: width, Height: height, Positions: make(map[string]Position, len(g.Nodes))}
	fit(raw, float64(width), float64(height), float64(l.margin()), func(i int, p Position) {
		out.Positions[g.Nodes[i].ID] = p
	})
	return out, nil
}

// canvas grows the configured size so the leaves keep NodeSpacing apart.
func (l *Layouter) canvas(g *domainNet.Graph) (int, int) {
	width, height := l.cfg.Width, l.cfg.Height
	leaves := len(g.NodesOfKind(domainNet.KindDrug))
	if leaves == 0 {
		return width, height
	}
	side := int(math.Ceil(math.Sqrt(float64(leaves)))) * l.cfg.NodeSpacing
	if side > width {
		width = side
	}
	levels := 3 * l.cfg.LevelSeparation
	if side > height {
		height = side
	}
	if levels > height {
		height = levels
	}
	return width, height
}

func (l *Layouter) margin() int {
	m := l.cfg.LevelSeparation / 3
	if m < domainNet.HubSize {
		m = domainNet.HubSize
	}
	return m
}

// fit maps raw coordinates onto [margin, size-margin] on each axis. A
// degenerate axis collapses to the canvas centre.
func fit(raw []r2.Vec, width, height, margin float64, set func(int, Position)) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range raw {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	scale := func(v, lo, hi, size float64) float64 {
		if hi-lo < 1e-9 {
			return size / 2
		}
		return margin + (v-lo)/(hi-lo)*(size-2*margin)
	}
	for i, v := range raw {
		set(i, Position{
			X: math.Round(scale(v.X, minX, maxX, width)*10) / 10,
			Y: math.Round(scale(v.Y, minY, maxY, height)*10) / 10,
		})
	}
}

//Personal.AI order the ending

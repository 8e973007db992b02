package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

func TestLayout_PositionsEveryNodeInsideCanvas(t *testing.T) {
	l := NewLayouter(config.NetworkConfig{LayoutUpdates: 50})
	g := aspirinGraph()

	out, err := l.Layout(g)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultNetworkWidth, out.Width)
	assert.Equal(t, config.DefaultNetworkHeight, out.Height)
	require.Len(t, out.Positions, len(g.Nodes))

	margin := float64(l.margin())
	for _, n := range g.Nodes {
		p, ok := out.Positions[n.ID]
		require.True(t, ok, n.ID)
		assert.GreaterOrEqual(t, p.X, margin-0.1, n.ID)
		assert.LessOrEqual(t, p.X, float64(out.Width)-margin+0.1, n.ID)
		assert.GreaterOrEqual(t, p.Y, margin-0.1, n.ID)
		assert.LessOrEqual(t, p.Y, float64(out.Height)-margin+0.1, n.ID)
	}
}

func TestLayout_DistinctPositions(t *testing.T) {
	out, err := NewLayouter(config.NetworkConfig{LayoutUpdates: 50}).Layout(aspirinGraph())
	require.NoError(t, err)

	seen := make(map[Position]string)
	for id, p := range out.Positions {
		other, dup := seen[p]
		assert.False(t, dup, "%s overlaps %s", id, other)
		seen[p] = id
	}
}

func TestLayout_CanvasGrowsWithLeaves(t *testing.T) {
	cfg := config.NetworkConfig{LayoutUpdates: 10, Width: 400, Height: 300, NodeSpacing: 100, LevelSeparation: 150}
	out, err := NewLayouter(cfg).Layout(wideGraph(40))
	require.NoError(t, err)

	// 40 leaves need a 7x7 grid at 100px.
	assert.Equal(t, 700, out.Width)
	assert.Equal(t, 700, out.Height)
}

func TestLayout_MinimumHeightFollowsLevelSeparation(t *testing.T) {
	cfg := config.NetworkConfig{LayoutUpdates: 10, Width: 1000, Height: 200, NodeSpacing: 50, LevelSeparation: 150}
	out, err := NewLayouter(cfg).Layout(aspirinGraph())
	require.NoError(t, err)
	assert.Equal(t, 450, out.Height)
}

func TestLayout_EmptyGraph(t *testing.T) {
	l := NewLayouter(config.NetworkConfig{})

	_, err := l.Layout(nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLayoutFailed))

	_, err = l.Layout(&domainNet.Graph{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeLayoutFailed))
}

func TestLayout_UnknownEdgeEndpoint(t *testing.T) {
	g := aspirinGraph()
	g.Edges = append(g.Edges, domainNet.Edge{From: domainNet.HubID, To: "missing"})

	_, err := NewLayouter(config.NetworkConfig{}).Layout(g)
	assert.True(t, errors.IsCode(err, errors.ErrCodeLayoutFailed))
}

func TestFit_DegenerateAxisCentres(t *testing.T) {
	var got []Position
	fit(nil, 100, 100, 10, func(int, Position) {})
	fit(rawLine(), 200, 100, 10, func(_ int, p Position) { got = append(got, p) })

	require.Len(t, got, 2)
	assert.Equal(t, Position{X: 10, Y: 50}, got[0])
	assert.Equal(t, Position{X: 190, Y: 50}, got[1])
}

func rawLine() []r2.Vec {
	return []r2.Vec{{X: 0, Y: 3}, {X: 5, Y: 3}}
}

//Personal.AI order the ending

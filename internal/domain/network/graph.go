// Package network builds the typed interaction graph of a selected drug: one
// hub node, one group node per distinct mechanism of action and the
// interacting drugs as leaves under their mechanism groups. Layout and
// rendering happen elsewhere.
package network

import (
	"fmt"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
)

// NodeKind classifies graph nodes.
type NodeKind string

const (
	KindHub       NodeKind = "hub"
	KindMechanism NodeKind = "mechanism"
	KindDrug      NodeKind = "drug"
)

// Styling of the three node tiers.
const (
	HubColor            = "#E41A1C"
	HubSize             = 40
	MechanismFill       = "#FFFFFF"
	MechanismSize       = 30
	MechanismBorder     = 2
	LeafSize            = 25
	MechanismLabelLimit = 20
	ShapeDot            = "dot"
	ShapeBox            = "box"
	HubID               = "hub"
	unknownTarget       = "Unknown"
)

// Palette is cycled by mechanism group index.
var Palette = []string{"#377EB8", "#4DAF4A", "#984EA3", "#FF7F00", "#FFFF33", "#A65628", "#F781BF", "#999999"}

// ColorFor returns the palette entry of mechanism group idx.
func ColorFor(idx int) string {
	return Palette[idx%len(Palette)]
}

// LeafPolicy decides how interacting drugs map to leaf nodes.
type LeafPolicy string

const (
	// LeafPerMechanism creates one leaf per (mechanism, drug) pair, so a drug
	// sharing two mechanisms with the hub appears twice.
	LeafPerMechanism LeafPolicy = "per_mechanism"
	// LeafMergedByDrug creates one leaf per drug with an edge from every
	// mechanism group it appears under.
	LeafMergedByDrug LeafPolicy = "merged"
)

// Node is a graph vertex with the attributes the renderer needs.
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        NodeKind `json:"kind"`
	Color       string   `json:"color"`
	BorderColor string   `json:"border_color,omitempty"`
	BorderWidth int      `json:"border_width,omitempty"`
	Shape       string   `json:"shape"`
	Size        int      `json:"size"`
	Title       string   `json:"title"`
	// Group is the mechanism index, -1 for the hub.
	Group int `json:"group"`
	// Drug is the preferred name for hub and leaf nodes.
	Drug string `json:"drug,omitempty"`
	// Mechanism is the full mechanism text for group nodes.
	Mechanism string `json:"mechanism,omitempty"`
}

// Edge connects two nodes by id.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Color string `json:"color"`
}

// Graph is the interaction graph of one selected drug.
type Graph struct {
	Selected   string     `json:"selected"`
	Policy     LeafPolicy `json:"policy"`
	Mechanisms []string   `json:"mechanisms"`
	Nodes      []Node     `json:"nodes"`
	Edges      []Edge     `json:"edges"`
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	policy LeafPolicy
}

// WithLeafPolicy selects the leaf policy. Unknown values fall back to
// LeafPerMechanism.
func WithLeafPolicy(p LeafPolicy) Option {
	return func(o *buildOptions) {
		if p == LeafMergedByDrug {
			o.policy = p
		} else {
			o.policy = LeafPerMechanism
		}
	}
}

// Build turns interaction rows into a graph. It returns (nil, false) for an
// empty row set, the "no graph" outcome callers render as "no interactions".
// Rows naming the selected drug itself are skipped.
func Build(selected string, rows []drug.InteractionEdge, opts ...Option) (*Graph, bool) {
	o := buildOptions{policy: LeafPerMechanism}
	for _, opt := range opts {
		opt(&o)
	}

	groups := groupByMechanism(selected, rows)
	if len(groups) == 0 {
		return nil, false
	}

	g := &Graph{Selected: selected, Policy: o.policy}
	g.Nodes = append(g.Nodes, Node{
		ID:    HubID,
		Label: selected,
		Kind:  KindHub,
		Color: HubColor,
		Shape: ShapeDot,
		Size:  HubSize,
		Title: "Main Drug: " + selected,
		Group: -1,
		Drug:  selected,
	})

	leafIndex := make(map[string]int)
	for idx, grp := range groups {
		color := ColorFor(idx)
		mechID := fmt.Sprintf("mech_%d", idx)
		g.Mechanisms = append(g.Mechanisms, grp.mechanism)
		g.Nodes = append(g.Nodes, Node{
			ID:          mechID,
			Label:       TruncateLabel(grp.mechanism),
			Kind:        KindMechanism,
			Color:       MechanismFill,
			BorderColor: color,
			BorderWidth: MechanismBorder,
			Shape:       ShapeBox,
			Size:        MechanismSize,
			Title:       "Mechanism: " + grp.mechanism,
			Group:       idx,
			Mechanism:   grp.mechanism,
		})
		g.Edges = append(g.Edges, Edge{From: HubID, To: mechID, Color: color})

		for _, leaf := range grp.drugs {
			leafID := mechID + ":" + leaf.name
			if o.policy == LeafMergedByDrug {
				leafID = "drug:" + leaf.name
			}
			if _, seen := leafIndex[leafID]; !seen {
				leafIndex[leafID] = len(g.Nodes)
				g.Nodes = append(g.Nodes, Node{
					ID:    leafID,
					Label: leaf.name,
					Kind:  KindDrug,
					Color: color,
					Shape: ShapeDot,
					Size:  LeafSize,
					Title: leafTitle(leaf.name, grp.mechanism, leaf.target),
					Group: idx,
					Drug:  leaf.name,
				})
			}
			g.Edges = append(g.Edges, Edge{From: mechID, To: leafID, Color: color})
		}
	}
	return g, true
}

// TruncateLabel shortens mechanism text to MechanismLabelLimit characters
// followed by "...".
func TruncateLabel(text string) string {
	r := []rune(text)
	if len(r) <= MechanismLabelLimit {
		return text
	}
	return string(r[:MechanismLabelLimit]) + "..."
}

func leafTitle(name, mechanism, target string) string {
	if target == "" {
		target = unknownTarget
	}
	return fmt.Sprintf("Drug: %s\nMechanism: %s\nTarget: %s", name, mechanism, target)
}

type leaf struct {
	name   string
	target string
}

type mechanismGroup struct {
	mechanism string
	drugs     []leaf
}

// groupByMechanism groups rows by mechanism in first-seen order. Within a
// group each drug appears once, carrying the target of its first row.
func groupByMechanism(selected string, rows []drug.InteractionEdge) []*mechanismGroup {
	var groups []*mechanismGroup
	byMechanism := make(map[string]*mechanismGroup)
	seen := make(map[string]map[string]bool)

	for _, row := range rows {
		if row.InteractingDrug == "" || drug.SameDrug(row.InteractingDrug, selected) {
			continue
		}
		grp, ok := byMechanism[row.Mechanism]
		if !ok {
			grp = &mechanismGroup{mechanism: row.Mechanism}
			byMechanism[row.Mechanism] = grp
			seen[row.Mechanism] = make(map[string]bool)
			groups = append(groups, grp)
		}
		if seen[row.Mechanism][row.InteractingDrug] {
			continue
		}
		seen[row.Mechanism][row.InteractingDrug] = true
		grp.drugs = append(grp.drugs, leaf{name: row.InteractingDrug, target: row.Target()})
	}
	return groups
}

// Hub returns the hub node.
func (g *Graph) Hub() Node {
	return g.Nodes[0]
}

// NodesOfKind returns the nodes of kind k in graph order.
func (g *Graph) NodesOfKind(k NodeKind) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// OutDegree counts edges leaving id.
func (g *Graph) OutDegree(id string) int {
	n := 0
	for _, e := range g.Edges {
		if e.From == id {
			n++
		}
	}
	return n
}

// InDegree counts edges entering id.
func (g *Graph) InDegree(id string) int {
	n := 0
	for _, e := range g.Edges {
		if e.To == id {
			n++
		}
	}
	return n
}

// Node looks a node up by id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

//Personal.AI order the ending

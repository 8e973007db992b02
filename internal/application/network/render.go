package network

import (
	"bytes"
	"embed"
	"html/template"
	"unicode/utf8"

	domainNet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// ContentTypeHTML is the media type of rendered documents.
const ContentTypeHTML = "text/html; charset=utf-8"

// Approximate glyph metrics used to size mechanism boxes.
const (
	charWidth  = 7
	boxPadding = 16
	boxHeight  = 28
	labelGap   = 12
)

type nodeView struct {
	ID          string
	Kind        domainNet.NodeKind
	Label       string
	Title       string
	X, Y        float64
	Fill        string
	Stroke      string
	StrokeWidth int
	Radius      float64
	LabelY      float64
	Box         bool
	BoxX, BoxY  float64
	BoxWidth    float64
	BoxHeight   float64
}

type edgeView struct {
	X1, Y1, X2, Y2 float64
	Color          string
}

type legendEntry struct {
	Mechanism string
	Color     string
}

type documentView struct {
	Selected string
	Width    int
	Height   int
	Nodes    []nodeView
	Edges    []edgeView
	Legend   []legendEntry
}

// Renderer turns a positioned graph into SVG or a standalone HTML document.
// Output references no external assets.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("document.html.tmpl").ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "template parse failed")
	}
	return &Renderer{tmpl: t}, nil
}

// Render returns the standalone HTML document.
func (r *Renderer) Render(g *domainNet.Graph, l *Layout) ([]byte, error) {
	view, err := buildView(g, l)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "document.html.tmpl", view); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "template execution failed")
	}
	return buf.Bytes(), nil
}

// RenderSVG returns the inline SVG for embedding in another page.
func (r *Renderer) RenderSVG(g *domainNet.Graph, l *Layout) (template.HTML, error) {
	view, err := buildView(g, l)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "svg", view); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeRenderFailed, "template execution failed")
	}
	// Escaped by html/template above.
	return template.HTML(buf.String()), nil
}

func buildView(g *domainNet.Graph, l *Layout) (*documentView, error) {
	if g == nil || l == nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "nothing to render")
	}
	view := &documentView{Selected: g.Selected, Width: l.Width, Height: l.Height}

	for _, n := range g.Nodes {
		p, ok := l.Positions[n.ID]
		if !ok {
			return nil, errors.Newf(errors.ErrCodeRenderFailed, "node %s has no position", n.ID)
		}
		nv := nodeView{
			ID:          n.ID,
			Kind:        n.Kind,
			Label:       n.Label,
			Title:       n.Title,
			X:           p.X,
			Y:           p.Y,
			Fill:        n.Color,
			Stroke:      n.BorderColor,
			StrokeWidth: n.BorderWidth,
		}
		if n.Shape == domainNet.ShapeBox {
			w := float64(utf8.RuneCountInString(n.Label)*charWidth + boxPadding)
			nv.Box = true
			nv.BoxWidth = w
			nv.BoxHeight = boxHeight
			nv.BoxX = p.X - w/2
			nv.BoxY = p.Y - boxHeight/2
		} else {
			nv.Radius = float64(n.Size) / 2
			nv.LabelY = p.Y + nv.Radius + labelGap
		}
		view.Nodes = append(view.Nodes, nv)
	}

	for _, e := range g.Edges {
		from, okFrom := l.Positions[e.From]
		to, okTo := l.Positions[e.To]
		if !okFrom || !okTo {
			return nil, errors.Newf(errors.ErrCodeRenderFailed, "edge %s -> %s has no position", e.From, e.To)
		}
		view.Edges = append(view.Edges, edgeView{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y, Color: e.Color})
	}

	for i, m := range g.Mechanisms {
		view.Legend = append(view.Legend, legendEntry{Mechanism: m, Color: domainNet.ColorFor(i)})
	}
	return view, nil
}

//Personal.AI order the ending

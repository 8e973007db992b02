package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/dashboard"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

//go:embed templates/dashboard.html.tmpl
var dashboardTemplate string

const notAvailable = "N/A"

var pageFuncs = template.FuncMap{
	"str": func(s *string) string {
		if s == nil || *s == "" {
			return notAvailable
		}
		return *s
	},
	"num": func(n *int) string {
		if n == nil {
			return notAvailable
		}
		return strconv.Itoa(*n)
	},
	"phase": func(n *int) string {
		if n == nil {
			return "Unknown"
		}
		return strconv.Itoa(*n)
	},
	"flag": func(b *bool) string {
		switch {
		case b == nil:
			return notAvailable
		case *b:
			return "Yes"
		default:
			return "No"
		}
	},
	"join": func(items []string) string {
		if len(items) == 0 {
			return notAvailable
		}
		return strings.Join(items, ", ")
	},
}

// propertyRow is one line of the properties table. Percent is the bar
// length against the reference value; Over marks a rule-of-five breach.
type propertyRow struct {
	Label   string
	Value   string
	Known   bool
	Percent float64
	Over    bool
}

type pageView struct {
	Query             string
	Suggestions       []drug.DrugSummary
	SuggestionMessage string
	Panel             *dashboard.Panel
	Properties        []propertyRow
	Error             string
}

// DashboardHandler serves the server-rendered dashboard page.
type DashboardHandler struct {
	catalog   CatalogService
	dashboard DashboardService
	tmpl      *template.Template
	logger    logging.Logger
}

func NewDashboardHandler(catalog CatalogService, dashboard DashboardService, log logging.Logger) (*DashboardHandler, error) {
	t, err := template.New("dashboard").Funcs(pageFuncs).Parse(dashboardTemplate)
	if err != nil {
		return nil, err
	}
	return &DashboardHandler{catalog: catalog, dashboard: dashboard, tmpl: t, logger: log.Named("dashboard_handler")}, nil
}

// Index handles GET /: the search box with suggestions for ?q=, the top
// list when q is blank.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	view := &pageView{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	h.suggest(r, view)
	h.render(w, r, http.StatusOK, view)
}

// Drug handles GET /drugs/{name}. Orchestration failures render the error
// panel with status 200, as the page itself was served.
func (h *DashboardHandler) Drug(w http.ResponseWriter, r *http.Request) {
	name := drugParam(r)
	view := &pageView{Query: name}
	h.suggest(r, view)

	panel, err := h.dashboard.Panel(r.Context(), name)
	if err != nil {
		logging.FromContext(r.Context(), h.logger).Error("Error updating drug info",
			logging.String(logging.FieldDrug, name), logging.Err(err))
		view.Error = err.Error()
		h.render(w, r, http.StatusOK, view)
		return
	}
	view.Panel = panel
	view.Properties = propertyRows(panel.Properties)
	h.render(w, r, http.StatusOK, view)
}

func (h *DashboardHandler) suggest(r *http.Request, view *pageView) {
	res := h.catalog.Search(r.Context(), view.Query)
	if res.Empty() {
		view.SuggestionMessage = catalog.NoDataMessage
		return
	}
	view.Suggestions = res.Data()
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, view *pageView) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		logging.FromContext(r.Context(), h.logger).Error("dashboard template failed", logging.Err(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func propertyRows(p *drug.PropertyRecord) []propertyRow {
	if p == nil {
		return nil
	}
	return []propertyRow{
		floatRow("Molecular Weight", p.FullMWT, drug.MaxMolecularWeight, true),
		floatRow("Molecular Weight (freebase)", p.MWFreebase, drug.MaxMolecularWeight, false),
		floatRow("AlogP", p.ALogP, drug.MaxLogP, true),
		intRow("Hydrogen Bond Acceptors", p.HBA, drug.MaxHBondAcceptors, true),
		intRow("Hydrogen Bond Donors", p.HBD, drug.MaxHBondDonors, true),
		floatRow("Polar Surface Area", p.PSA, 140, false),
		intRow("Aromatic Rings", p.AromaticRings, 5, false),
		floatRow("QED Weighted", p.QEDWeighted, 1, false),
	}
}

func floatRow(label string, v *float64, ref float64, rule bool) propertyRow {
	if v == nil {
		return propertyRow{Label: label, Value: notAvailable}
	}
	return propertyRow{
		Label:   label,
		Value:   strconv.FormatFloat(*v, 'f', 2, 64),
		Known:   true,
		Percent: barPercent(*v, ref),
		Over:    rule && *v > ref,
	}
}

func intRow(label string, v *int, ref int, rule bool) propertyRow {
	if v == nil {
		return propertyRow{Label: label, Value: notAvailable}
	}
	return propertyRow{
		Label:   label,
		Value:   strconv.Itoa(*v),
		Known:   true,
		Percent: barPercent(float64(*v), float64(ref)),
		Over:    rule && *v > ref,
	}
}

// barPercent scales v against ref into [0, 100].
func barPercent(v, ref float64) float64 {
	if ref <= 0 || v <= 0 {
		return 0
	}
	return math.Round(math.Min(v/ref, 1)*1000) / 10
}

//Personal.AI order the ending

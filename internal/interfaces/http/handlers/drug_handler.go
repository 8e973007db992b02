package handlers

import (
	"net/http"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

// DrugHandler serves the catalog JSON API under /api/v1/drugs.
type DrugHandler struct {
	catalog   CatalogService
	dashboard DashboardService
	logger    logging.Logger
}

func NewDrugHandler(catalog CatalogService, dashboard DashboardService, log logging.Logger) *DrugHandler {
	return &DrugHandler{catalog: catalog, dashboard: dashboard, logger: log.Named("drug_handler")}
}

// Search handles GET /api/v1/drugs/search?q=.
func (h *DrugHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.catalog.Search(r.Context(), r.URL.Query().Get("q")))
}

// Top handles GET /api/v1/drugs/top.
func (h *DrugHandler) Top(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.catalog.TopDrugs(r.Context()))
}

// Detail handles GET /api/v1/drugs/{name}.
func (h *DrugHandler) Detail(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.catalog.Detail(r.Context(), drugParam(r)))
}

// Properties handles GET /api/v1/drugs/{name}/properties.
func (h *DrugHandler) Properties(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.catalog.Properties(r.Context(), drugParam(r)))
}

// Interactions handles GET /api/v1/drugs/{name}/interactions.
func (h *DrugHandler) Interactions(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.catalog.Interactions(r.Context(), drugParam(r)))
}

// DrugLikeness handles GET /api/v1/druglikeness?q=.
func (h *DrugHandler) DrugLikeness(w http.ResponseWriter, r *http.Request) {
	dl, err := h.dashboard.DrugLikeness(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeOrchestrationError(w, r, h.logger, "druglikeness", err)
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: dl})
}

//Personal.AI order the ending

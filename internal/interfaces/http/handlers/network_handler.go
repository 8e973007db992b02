package handlers

import (
	"fmt"
	"net/http"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/dashboard"
	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// NetworkHandler serves the interaction network endpoints.
type NetworkHandler struct {
	dashboard DashboardService
	logger    logging.Logger
}

func NewNetworkHandler(svc DashboardService, log logging.Logger) *NetworkHandler {
	return &NetworkHandler{dashboard: svc, logger: log.Named("network_handler")}
}

// Graph handles GET /api/v1/drugs/{name}/network. A drug without
// interactions is 200 with a null graph.
func (h *NetworkHandler) Graph(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.Network(r.Context(), drugParam(r))
	if err != nil {
		writeOrchestrationError(w, r, h.logger, "network", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Document handles GET /api/v1/drugs/{name}/network.html, the standalone
// download.
func (h *NetworkHandler) Document(w http.ResponseWriter, r *http.Request) {
	name := drugParam(r)
	doc, err := h.dashboard.NetworkDocument(r.Context(), name)
	if errors.IsCode(err, errors.ErrCodeNoInteractions) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Code: string(errors.ErrCodeNoInteractions), Message: dashboard.NoInteractionMsg})
		return
	}
	if err != nil {
		writeOrchestrationError(w, r, h.logger, "network document", err)
		return
	}
	w.Header().Set("Content-Type", appnet.ContentTypeHTML)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_network.html"`, appnet.Slug(name)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// Export handles POST /api/v1/drugs/{name}/network/export.
func (h *NetworkHandler) Export(w http.ResponseWriter, r *http.Request) {
	res, err := h.dashboard.Export(r.Context(), drugParam(r))
	if err != nil {
		writeOrchestrationError(w, r, h.logger, "network export", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

//Personal.AI order the ending

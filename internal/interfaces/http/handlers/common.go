package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DataResponse wraps fail-soft query results. Message is set when Data is
// empty.
type DataResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// writeAppError maps application errors to their HTTP status. Server-side
// faults are masked.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	msg := errors.DefaultMessageForCode(code)
	var ae *errors.AppError
	if errors.As(err, &ae) && errors.IsClientError(code) {
		msg = ae.Message
	}
	if msg == "" {
		msg = "internal server error"
	}
	writeJSON(w, status, ErrorResponse{Code: string(code), Message: msg})
}

// writeOrchestrationError reports a fail-loud failure. Client errors pass
// through; anything else is logged and, without a code of its own, reported
// as retries exhausted.
func writeOrchestrationError(w http.ResponseWriter, r *http.Request, log logging.Logger, what string, err error) {
	code := errors.GetCode(err)
	if errors.IsClientError(code) || code == errors.ErrCodeFeatureDisabled {
		writeAppError(w, err)
		return
	}
	logging.FromContext(r.Context(), log).Error(what+" failed", logging.String(logging.FieldDrug, drugParam(r)), logging.Err(err))
	if code == errors.CodeUnknown {
		err = errors.Wrap(err, errors.ErrCodeRetryExhausted, what+" failed")
	}
	writeAppError(w, err)
}

// writeResult renders a catalog result. Empty and failed results are both
// 200 with the "No data available" message, so the page shows an info panel
// rather than an error.
func writeResult[T any](w http.ResponseWriter, res catalog.Result[T]) {
	if res.Empty() {
		var data interface{} = res.Data()
		if !res.OK() {
			data = []struct{}{}
		}
		writeJSON(w, http.StatusOK, DataResponse{Data: data, Message: catalog.NoDataMessage})
		return
	}
	writeJSON(w, http.StatusOK, DataResponse{Data: res.Data()})
}

// drugParam returns the {name} path segment, trimmed.
func drugParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "name"))
}

//Personal.AI order the ending

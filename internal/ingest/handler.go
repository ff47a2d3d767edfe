// internal/ingest/handler.go
package ingest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ingest/sales", h.IngestSales).Methods("POST")
}

// IngestSales accepts a sales-history CSV body. The target location comes
// from the ?location_id query parameter.
func (h *Handler) IngestSales(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	if locationID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "location_id is required"})
		return
	}

	count, err := h.service.IngestSalesCSV(r.Context(), r.Body, locationID)
	if err != nil {
		log.Error().Err(err).Msg("sales ingest failed")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ingested": count})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

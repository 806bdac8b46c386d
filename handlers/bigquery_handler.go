package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// GetBigQueryData handles the warehouse passthrough. Any failure from the
// client surfaces as a plain 500; there is no retry and no partial result.
func (h *Handler) GetBigQueryData(w http.ResponseWriter, r *http.Request) {
	if h.Warehouse == nil {
		http.Error(w, "Error fetching data from BigQuery", http.StatusInternalServerError)
		return
	}

	rows, err := h.Warehouse.FetchAggregate(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("error fetching data from BigQuery")
		http.Error(w, "Error fetching data from BigQuery", http.StatusInternalServerError)
		return
	}

	h.ResponseHdlr.JSON(w, http.StatusOK, rows)
}

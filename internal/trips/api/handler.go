package api

import (
	"encoding/json"
	"net/http"

	"bus-ticketing/internal/models"
	"bus-ticketing/internal/trips"
	"bus-ticketing/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	TripService *trips.TripService
}

// Search handles GET /trips with origin/destination/departure_date
// query params, mirroring the search form.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req := models.TripSearchRequest{
		Origin:        r.URL.Query().Get("origin"),
		Destination:   r.URL.Query().Get("destination"),
		DepartureDate: r.URL.Query().Get("departure_date"),
	}

	results, err := h.TripService.Search(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(results))
}

func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	results, err := h.TripService.Featured(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Erro de processamento no servidor"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(results))
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")
	trip, err := h.TripService.GetTrip(r.Context(), tripID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Viagem não encontrada"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(trip))
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

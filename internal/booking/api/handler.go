package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bus-ticketing/internal/auth"
	"bus-ticketing/internal/booking"
	"bus-ticketing/internal/models"
	"bus-ticketing/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	BookingService *booking.BookingService
}

// SessionView is the checkout state as the client renders it: both
// floors with the selection overlay, the roster, the quote and, after
// confirmation, the finalized order.
type SessionView struct {
	SessionID    string                `json:"session_id"`
	Step         booking.Step          `json:"step"`
	Trip         models.Trip           `json:"trip"`
	LowerFloor   []models.Seat         `json:"lower_floor"`
	UpperFloor   []models.Seat         `json:"upper_floor"`
	Selection    []string              `json:"selection"`
	Roster       []models.Passenger    `json:"roster"`
	Quote        booking.Quote         `json:"quote"`
	Confirmation *booking.Confirmation `json:"confirmation,omitempty"`
}

func newSessionView(s *booking.Session) SessionView {
	return SessionView{
		SessionID:    s.SessionID,
		Step:         s.Step(),
		Trip:         s.Trip,
		LowerFloor:   s.FloorView(models.FloorLower),
		UpperFloor:   s.FloorView(models.FloorUpper),
		Selection:    s.SelectedSeats(),
		Roster:       s.Roster(),
		Quote:        s.Quote(),
		Confirmation: s.Confirmation(),
	}
}

// StartCheckout opens a session for a trip: POST /trips/{tripId}/checkout.
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	tripID := chi.URLParam(r, "tripId")
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Você precisa estar logado para acessar este recurso."))
		return
	}

	session, err := h.BookingService.StartSession(r.Context(), tripID, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Viagem não encontrada"))
		return
	}
	writeJSON(w, http.StatusCreated, utils.SuccessResponse(newSessionView(session)))
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

// ToggleSeat flips one seat: POST /checkout/{sessionId}/seats/{seatNumber}/toggle.
// Toggling an occupied seat is not an error, just a no-op, so the
// response is always the refreshed view.
func (h *Handler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.ToggleSeat(chi.URLParam(r, "seatNumber"))
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.ClearSelection()
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.AdvanceToPayment(); err != nil {
		if errors.Is(err, booking.ErrEmptySelection) {
			writeJSON(w, http.StatusUnprocessableEntity,
				utils.ErrorResponse("Selecione um ou mais assentos para continuar com sua compra"))
			return
		}
		writeJSON(w, http.StatusConflict, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.Back(); err != nil {
		writeJSON(w, http.StatusConflict, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

func (h *Handler) AddPassenger(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := session.AddPassenger(); err != nil {
		writeJSON(w, http.StatusConflict, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

func (h *Handler) RemovePassenger(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Índice de passageiro inválido"))
		return
	}
	// Index 0 is silently kept: the first passenger is mandatory.
	session.RemovePassenger(index)
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

type updatePassengerRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) UpdatePassenger(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Índice de passageiro inválido"))
		return
	}

	var req updatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Corpo da requisição inválido"))
		return
	}
	if err := session.UpdatePassenger(index, booking.PassengerField(req.Field), req.Value); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(newSessionView(session)))
}

// Submit runs the final transition: POST /checkout/{sessionId}/submit
// with the card fields in the body.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	var card models.CardDetails
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Corpo da requisição inválido"))
		return
	}

	conf, err := h.BookingService.Submit(r.Context(), sessionID, card)
	if err != nil {
		var verrs booking.ValidationErrors
		var gerr *booking.GatewayError
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Sessão de compra não encontrada"))
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusUnprocessableEntity, utils.ErrorResponse(verrs.Messages()...))
		case errors.Is(err, booking.ErrConfirmationInFlight):
			writeJSON(w, http.StatusConflict, utils.ErrorResponse("Pagamento em processamento, aguarde"))
		case errors.Is(err, booking.ErrSeatsLocked):
			writeJSON(w, http.StatusConflict, utils.ErrorResponse("Um ou mais assentos acabaram de ser reservados"))
		case errors.As(err, &gerr):
			writeJSON(w, http.StatusBadGateway, utils.ErrorResponse("Pagamento recusado, tente novamente"))
		default:
			writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Erro de processamento no servidor"))
		}
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse(conf))
}

// OrderHistory returns the caller's orders with boarding passes.
func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Você precisa estar logado para acessar este recurso."))
		return
	}

	orders, err := h.BookingService.OrderHistory(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Erro de processamento no servidor"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	order, err := h.BookingService.GetOrder(orderID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Pedido não encontrado"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(order))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if err := h.BookingService.CancelOrder(orderID); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(nil))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*booking.Session, bool) {
	sessionID := chi.URLParam(r, "sessionId")
	session, err := h.BookingService.GetSession(sessionID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Sessão de compra não encontrada"))
		return nil, false
	}
	return session, true
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

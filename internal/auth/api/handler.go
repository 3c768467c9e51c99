package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"bus-ticketing/internal/auth"
	"bus-ticketing/internal/logger"
	"bus-ticketing/internal/models"
	"bus-ticketing/internal/utils"
)

type Handler struct {
	AuthService *auth.AuthService
	Logger      *logger.Logger
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Corpo da requisição inválido"))
		return
	}

	user, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, utils.ErrorResponse("E-mail já cadastrado"))
			return
		}
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	h.Logger.LogSecurity("REGISTER", "new user "+user.Email)
	writeJSON(w, http.StatusCreated, utils.SuccessResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Corpo da requisição inválido"))
		return
	}

	resp, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		h.Logger.LogSecurity("LOGIN_FAILED", req.Email)
		writeJSON(w, http.StatusUnauthorized, utils.ErrorResponse("E-mail ou senha inválidos"))
		return
	}

	writeJSON(w, http.StatusOK, utils.SuccessResponse(resp))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractTokenFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Token ausente"))
		return
	}
	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Erro de processamento no servidor"))
		return
	}
	writeJSON(w, http.StatusOK, utils.SuccessResponse(nil))
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

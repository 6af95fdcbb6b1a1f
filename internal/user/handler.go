package user

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"socialwall/internal/common"
	"socialwall/internal/dbmysql"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

// Register mounts the user routes. /api/me is gated behind a valid session.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/api/register", h.register).Methods("POST")
	router.HandleFunc("/api/login", h.login).Methods("POST")
	router.Handle("/api/me", common.RequireAuth(http.HandlerFunc(h.me))).Methods("GET")
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Team     string `json:"team,omitempty"`
}

type authResponse struct {
	User  *dbmysql.User `json:"user"`
	Token string        `json:"token"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.RegisterUser(r.Context(), req.Name, req.Password, req.Team)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.LoginUser(r.Context(), req.Name, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID := common.IdentityFromContext(r.Context())
	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrEmailTaken) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	w.Header().Set(AuthHeader, token)
	respondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	w.Header().Set(AuthHeader, token)
	respondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// Logout revokes only the token the request authenticated with; sessions on
// other devices stay valid.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	token, okToken := tokenFromContext(r.Context())
	if !ok || !okToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.service.RevokeToken(r.Context(), user.ID, token); err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to log out")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.service.RevokeAllTokens(r.Context(), user.ID); err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to log out")
		return
	}
	w.WriteHeader(http.StatusOK)
}

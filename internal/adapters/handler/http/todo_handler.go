package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/api/internal/core/domain"
	"github.com/taskvault/api/internal/core/ports"
)

type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

type createTodoRequest struct {
	Text string `json:"text"`
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.service.Create(r.Context(), user.ID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}

	respondWithJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	todos, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"status": "OK", "todos": todos})
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	todo, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		respondTodoError(w, err, "failed to get todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"status": "OK", "todo": todo})
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var input ports.UpdateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), user.ID, input)
	if err != nil {
		respondTodoError(w, err, "failed to update todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"status": "OK", "todo": todo})
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	todo, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		respondTodoError(w, err, "failed to delete todo")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"status": "OK", "deletedTodo": todo})
}

// respondTodoError keeps a missing todo and someone else's todo
// indistinguishable: both surface as 404.
func respondTodoError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidTodoID), errors.Is(err, domain.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTodoNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

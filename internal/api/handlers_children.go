package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hearthside/planner/internal/api/respond"
	"github.com/hearthside/planner/internal/api/validate"
	"github.com/hearthside/planner/internal/model"
	"github.com/hearthside/planner/internal/store"
)

// ChildHandler is a thin HTTP transport over the children aggregate.
type ChildHandler struct {
	store store.Store
}

func NewChildHandler(st store.Store) *ChildHandler { return &ChildHandler{store: st} }

// CreateChild POST /api/children
func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		TimeZone string `json:"timeZone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Name(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.TimeZone(req.TimeZone); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.store.Children().Create(r.Context(), &model.Child{Name: req.Name, TimeZone: req.TimeZone})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetChild GET /api/children/{childId}
func (h *ChildHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	child, err := h.store.Children().Get(r.Context(), mux.Vars(r)["childId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, child)
}

// DeleteChild DELETE /api/children/{childId}
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Children().Delete(r.Context(), mux.Vars(r)["childId"]); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

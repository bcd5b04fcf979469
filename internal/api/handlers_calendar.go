package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hearthside/planner/internal/api/respond"
	"github.com/hearthside/planner/internal/cache"
	"github.com/hearthside/planner/internal/core/schedule"
	"github.com/hearthside/planner/internal/ical"
)

// CalendarHandler imports external calendars as fixed time blocks. Clients
// either inline the calendar text or point at a URL the server fetches.
type CalendarHandler struct {
	svc        *schedule.Service
	fetcher    *ical.Fetcher
	capacities *cache.Cache[*schedule.CapacitySnapshot]
	loc        *time.Location
}

func NewCalendarHandler(svc *schedule.Service, fetcher *ical.Fetcher, capacities *cache.Cache[*schedule.CapacitySnapshot], loc *time.Location) *CalendarHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarHandler{svc: svc, fetcher: fetcher, capacities: capacities, loc: loc}
}

// ImportCalendar POST /api/children/{childId}/calendar/import
func (h *CalendarHandler) ImportCalendar(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["childId"]
	var req struct {
		Content string `json:"content"`
		URL     string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Content == "" && req.URL == "" {
		respond.WriteBadRequest(w, "either content or url is required")
		return
	}
	if req.Content != "" && req.URL != "" {
		respond.WriteBadRequest(w, "content and url are mutually exclusive")
		return
	}

	content := req.Content
	if req.URL != "" {
		fetched, err := h.fetcher.FetchURL(r.Context(), req.URL)
		if err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		content = fetched
	} else if err := h.fetcher.Validate(content); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	res, err := h.svc.ImportCalendar(r.Context(), childID, content, time.Now(), h.loc)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if res.Created > 0 {
		h.capacities.Flush()
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

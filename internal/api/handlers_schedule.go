package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hearthside/planner/internal/api/respond"
	"github.com/hearthside/planner/internal/api/validate"
	"github.com/hearthside/planner/internal/cache"
	"github.com/hearthside/planner/internal/core/schedule"
)

// dayFormat is the wire format for calendar dates in request bodies.
const dayFormat = "2006-01-02"

// ScheduleHandler exposes the scheduling engine workflows over HTTP.
type ScheduleHandler struct {
	svc        *schedule.Service
	capacities *cache.Cache[*schedule.CapacitySnapshot]
}

func NewScheduleHandler(svc *schedule.Service, capacities *cache.Cache[*schedule.CapacitySnapshot]) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, capacities: capacities}
}

// GetDayCapacity GET /api/children/{childId}/capacity/{weekday}
func (h *ScheduleHandler) GetDayCapacity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	childID := vars["childId"]
	weekday, err := strconv.Atoi(vars["weekday"])
	if err != nil {
		respond.WriteBadRequest(w, "weekday must be an integer")
		return
	}
	if err := validate.Weekday(weekday); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	key := capacityKey(childID, weekday)
	if snap, ok := h.capacities.Get(key); ok {
		respond.WriteJSON(w, http.StatusOK, snap)
		return
	}

	snap, err := h.svc.DayCapacity(r.Context(), childID, weekday)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	h.capacities.Put(key, snap)
	respond.WriteJSON(w, http.StatusOK, snap)
}

// GetWeekCapacity GET /api/children/{childId}/capacity
func (h *ScheduleHandler) GetWeekCapacity(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["childId"]

	week := make([]*schedule.CapacitySnapshot, 0, 7)
	for weekday := 1; weekday <= 7; weekday++ {
		key := capacityKey(childID, weekday)
		if snap, ok := h.capacities.Get(key); ok {
			week = append(week, snap)
			continue
		}
		snap, err := h.svc.DayCapacity(r.Context(), childID, weekday)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		h.capacities.Put(key, snap)
		week = append(week, snap)
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"days": week})
}

// SuggestSlots GET /api/children/{childId}/sessions/{sessionId}/suggestions
func (h *ScheduleHandler) SuggestSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sess, err := h.svc.Session(r.Context(), vars["childId"], vars["sessionId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	now := time.Now()
	reference := now
	if raw := r.URL.Query().Get("from"); raw != "" {
		reference, err = time.Parse(dayFormat, raw)
		if err != nil {
			respond.WriteBadRequest(w, "from must be YYYY-MM-DD")
			return
		}
	}

	suggestions, err := h.svc.SuggestSlots(r.Context(), sess, reference, now)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions, "count": len(suggestions)})
}

// SkipSession POST /api/children/{childId}/sessions/{sessionId}/skip
func (h *ScheduleHandler) SkipSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req struct {
		MissedDate string `json:"missedDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	now := time.Now()
	missed := now
	if req.MissedDate != "" {
		var err error
		missed, err = time.Parse(dayFormat, req.MissedDate)
		if err != nil {
			respond.WriteBadRequest(w, "missedDate must be YYYY-MM-DD")
			return
		}
	}

	res, err := h.svc.SkipAndSuggest(r.Context(), vars["childId"], vars["sessionId"], missed, now)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, res)
}

// AutoReschedule POST /api/children/{childId}/schedule/auto-reschedule
func (h *ScheduleHandler) AutoReschedule(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["childId"]
	var req struct {
		SessionIDs []string `json:"sessionIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	now := time.Now()
	res, err := h.svc.AutoRescheduleFlexible(r.Context(), childID, now, now, req.SessionIDs)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if len(res.Moved) > 0 {
		h.capacities.Flush()
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// Redistribute POST /api/children/{childId}/schedule/redistribute
func (h *ScheduleHandler) Redistribute(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["childId"]
	var req struct {
		MaxBatch int `json:"maxBatch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.MaxBatch < 0 {
		respond.WriteBadRequest(w, "maxBatch must not be negative")
		return
	}

	res, err := h.svc.RedistributeCatchUps(r.Context(), childID, req.MaxBatch, time.Now())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if len(res.Redistributed) > 0 {
		h.capacities.Flush()
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

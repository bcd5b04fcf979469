package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hearthside/planner/internal/api/respond"
	"github.com/hearthside/planner/internal/api/validate"
	"github.com/hearthside/planner/internal/cache"
	"github.com/hearthside/planner/internal/core/schedule"
	"github.com/hearthside/planner/internal/model"
	"github.com/hearthside/planner/internal/store"
)

// SessionHandler is a thin HTTP transport over the sessions aggregate. It
// shares the capacity cache with ScheduleHandler so writes invalidate reads.
type SessionHandler struct {
	store      store.Store
	capacities *cache.Cache[*schedule.CapacitySnapshot]
}

func NewSessionHandler(st store.Store, capacities *cache.Cache[*schedule.CapacitySnapshot]) *SessionHandler {
	return &SessionHandler{store: st, capacities: capacities}
}

// capacityKey is the cache key for one child's weekday snapshot.
func capacityKey(childID string, weekday int) string {
	return fmt.Sprintf("%s:%d", childID, weekday)
}

// CreateSession POST /api/children/{childId}/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["childId"]
	var req struct {
		TopicID          string `json:"topicId"`
		Title            string `json:"title"`
		EstimatedMinutes int    `json:"estimatedMinutes"`
		Commitment       string `json:"commitment"`
		Status           string `json:"status"`
		ScheduledDay     int    `json:"scheduledDay"`
		StartTime        string `json:"startTime"`
		EndTime          string `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Commitment == "" {
		req.Commitment = string(model.CommitmentFlexible)
	}
	if req.Status == "" {
		req.Status = string(model.StatusPlanned)
	}
	commitment := model.CommitmentKind(req.Commitment)
	status := model.SessionStatus(req.Status)

	if err := validate.CreateSession(req.Title, req.EstimatedMinutes, commitment, status); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Placement(req.ScheduledDay, req.StartTime, req.EndTime); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if _, err := h.store.Children().Get(r.Context(), childID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	out, err := h.store.Sessions().Create(r.Context(), &model.Session{
		ChildID:          childID,
		TopicID:          req.TopicID,
		Title:            req.Title,
		EstimatedMinutes: req.EstimatedMinutes,
		Status:           status,
		Commitment:       commitment,
		ScheduledDay:     req.ScheduledDay,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if out.ScheduledDay != 0 {
		h.capacities.Forget(capacityKey(childID, out.ScheduledDay))
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListSessions GET /api/children/{childId}/sessions[?weekday=N]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	childID := mux.Vars(r)["childId"]

	var (
		sessions []*model.Session
		err      error
	)
	if raw := r.URL.Query().Get("weekday"); raw != "" {
		weekday, convErr := strconv.Atoi(raw)
		if convErr != nil {
			respond.WriteBadRequest(w, "weekday must be an integer")
			return
		}
		if err := validate.Weekday(weekday); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		sessions, err = h.store.Sessions().ListByChildAndDay(r.Context(), childID, weekday)
	} else {
		sessions, err = h.store.Sessions().ListByChild(r.Context(), childID)
	}
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions, "count": len(sessions)})
}

// GetSession GET /api/children/{childId}/sessions/{sessionId}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sess, err := h.store.Sessions().Get(r.Context(), vars["childId"], vars["sessionId"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

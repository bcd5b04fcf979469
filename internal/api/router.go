package api

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/hearthside/planner/internal/api/recovery"
	"github.com/hearthside/planner/internal/cache"
	"github.com/hearthside/planner/internal/core/schedule"
	"github.com/hearthside/planner/internal/ical"
	"github.com/hearthside/planner/internal/store"
)

// capacityTTL bounds how stale a served capacity snapshot may be. Writes
// through this API invalidate affected entries immediately; the TTL only
// covers writes from other processes.
const capacityTTL = 30 * time.Second

// RouterOptions carries optional router tuning. The zero value is usable.
type RouterOptions struct {
	// MaxCalendarBytes caps accepted calendar payloads; 0 means the
	// package default.
	MaxCalendarBytes int

	// Location interprets calendar timestamps without a zone; nil means
	// the process-local zone.
	Location *time.Location
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(st store.Store, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	svc := schedule.NewService(st)
	capacities := cache.New[*schedule.CapacitySnapshot](capacityTTL)
	fetcher := ical.NewFetcher(opts.MaxCalendarBytes)

	healthHandler := NewHealthHandler(st)
	childHandler := NewChildHandler(st)
	sessionHandler := NewSessionHandler(st, capacities)
	scheduleHandler := NewScheduleHandler(svc, capacities)
	calendarHandler := NewCalendarHandler(svc, fetcher, capacities, opts.Location)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStorageHealth).Methods("GET")

	// Child endpoints
	router.HandleFunc("/api/children", childHandler.CreateChild).Methods("POST")
	router.HandleFunc("/api/children/{childId}", childHandler.GetChild).Methods("GET")
	router.HandleFunc("/api/children/{childId}", childHandler.DeleteChild).Methods("DELETE")

	// Session endpoints
	router.HandleFunc("/api/children/{childId}/sessions", sessionHandler.CreateSession).Methods("POST")
	router.HandleFunc("/api/children/{childId}/sessions", sessionHandler.ListSessions).Methods("GET")
	router.HandleFunc("/api/children/{childId}/sessions/{sessionId}", sessionHandler.GetSession).Methods("GET")

	// Capacity endpoints
	router.HandleFunc("/api/children/{childId}/capacity", scheduleHandler.GetWeekCapacity).Methods("GET")
	router.HandleFunc("/api/children/{childId}/capacity/{weekday:[0-9]+}", scheduleHandler.GetDayCapacity).Methods("GET")

	// Scheduling workflows
	router.HandleFunc("/api/children/{childId}/sessions/{sessionId}/suggestions", scheduleHandler.SuggestSlots).Methods("GET")
	router.HandleFunc("/api/children/{childId}/sessions/{sessionId}/skip", scheduleHandler.SkipSession).Methods("POST")
	router.HandleFunc("/api/children/{childId}/schedule/auto-reschedule", scheduleHandler.AutoReschedule).Methods("POST")
	router.HandleFunc("/api/children/{childId}/schedule/redistribute", scheduleHandler.Redistribute).Methods("POST")

	// Calendar import
	router.HandleFunc("/api/children/{childId}/calendar/import", calendarHandler.ImportCalendar).Methods("POST")

	return router
}

package schedule

import (
	"context"

	"github.com/hearthside/planner/internal/model"
)

// DailyCapacityMinutes is the nominal study budget of a school day.
const DailyCapacityMinutes = 360

// CapacityStatus labels how full a day is.
type CapacityStatus string

const (
	CapacityOverloaded CapacityStatus = "overloaded"
	CapacityBusy       CapacityStatus = "busy"
	CapacityModerate   CapacityStatus = "moderate"
	CapacityLight      CapacityStatus = "light"
)

// CapacitySnapshot summarizes one weekday of a child's schedule against the
// fixed daily capacity. It is computed on demand and never persisted.
type CapacitySnapshot struct {
	Weekday          int            `json:"weekday"`
	SessionCount     int            `json:"sessionCount"`
	ScheduledMinutes int            `json:"scheduledMinutes"`
	Utilization      float64        `json:"utilization"`
	Status           CapacityStatus `json:"status"`
	CanAddSession    bool           `json:"canAddSession"`
}

// DayCapacity computes the capacity snapshot for one weekday (1=Monday ..
// 7=Sunday). It only reads; no writes, no caching.
func (s *Service) DayCapacity(ctx context.Context, childID string, weekday int) (*CapacitySnapshot, error) {
	if weekday < 1 || weekday > 7 {
		return nil, model.NewValidationError("weekday", "weekday must be between 1 and 7")
	}
	sessions, err := s.store.Sessions().ListByChildAndDay(ctx, childID, weekday)
	if err != nil {
		return nil, err
	}
	return buildSnapshot(weekday, sessions), nil
}

func buildSnapshot(weekday int, sessions []*model.Session) *CapacitySnapshot {
	total := 0
	for _, sess := range sessions {
		total += sess.EstimatedMinutes
	}
	util := float64(total) / DailyCapacityMinutes * 100

	return &CapacitySnapshot{
		Weekday:          weekday,
		SessionCount:     len(sessions),
		ScheduledMinutes: total,
		Utilization:      util,
		Status:           statusFor(util),
		CanAddSession:    util < 90,
	}
}

// statusFor maps utilization to a band. The four bands partition [0, inf).
func statusFor(utilization float64) CapacityStatus {
	switch {
	case utilization >= 90:
		return CapacityOverloaded
	case utilization >= 70:
		return CapacityBusy
	case utilization >= 40:
		return CapacityModerate
	default:
		return CapacityLight
	}
}

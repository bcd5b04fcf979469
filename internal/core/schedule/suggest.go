package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hearthside/planner/internal/model"
)

const (
	// suggestionWindowDays is how far past the reference date candidates
	// are drawn from.
	suggestionWindowDays = 14

	// maxSuggestions caps the returned list.
	maxSuggestions = 10

	// recommendedBelowPct: a slot is recommended while the day stays under
	// this utilization after placement.
	recommendedBelowPct = 80.0

	// autoApplyMaxDifficulty is the ceiling for unattended rescheduling.
	autoApplyMaxDifficulty = 5
)

// slotStarts is the canonical menu of half-hour-aligned start times tested
// on every candidate day.
var slotStarts = []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00"}

// Suggestion is a scored candidate slot for placing a session. Lower
// difficulty is easier; ties keep day-then-slot discovery order.
type Suggestion struct {
	Date         time.Time `json:"date"`
	Weekday      int       `json:"weekday"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	CapacityUsed float64   `json:"capacityUsed"`
	Difficulty   int       `json:"difficulty"`
	Recommended  bool      `json:"recommended"`
}

// SuggestSlots proposes up to maxSuggestions slots for placing sess, drawn
// from the 14 days following reference. now anchors the recency component of
// the difficulty score; the function reads current schedule state and is
// otherwise pure.
func (s *Service) SuggestSlots(ctx context.Context, sess *model.Session, reference, now time.Time) ([]Suggestion, error) {
	if sess == nil {
		return nil, model.NewValidationError("session", "session is required")
	}
	if sess.EstimatedMinutes <= 0 {
		return nil, model.NewValidationError("estimatedMinutes", "estimated minutes must be positive")
	}

	var out []Suggestion
	refDate := dateOnly(reference)

	for d := 1; d <= suggestionWindowDays; d++ {
		date := refDate.AddDate(0, 0, d)
		weekday := isoWeekday(date)

		existing, err := s.store.Sessions().ListByChildAndDay(ctx, sess.ChildID, weekday)
		if err != nil {
			return nil, err
		}
		booked := 0
		for _, e := range existing {
			booked += e.EstimatedMinutes
		}

		remaining := DailyCapacityMinutes - booked
		if sess.EstimatedMinutes > remaining {
			continue
		}

		capacityUsed := float64(booked+sess.EstimatedMinutes) / DailyCapacityMinutes * 100
		difficulty := daysBetween(date, now) +
			commitmentPenalty(sess.Commitment) +
			capacityPenalty(capacityUsed)

		for _, start := range slotStarts {
			out = append(out, Suggestion{
				Date:         date,
				Weekday:      weekday,
				StartTime:    start,
				EndTime:      addMinutes(start, sess.EstimatedMinutes),
				CapacityUsed: capacityUsed,
				Difficulty:   difficulty,
				Recommended:  capacityUsed < recommendedBelowPct,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Difficulty < out[j].Difficulty })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}

	log.Debug().
		Str("childId", sess.ChildID).
		Str("sessionId", sess.SessionID).
		Int("suggestions", len(out)).
		Msg("slot suggestions generated")
	return out, nil
}

// commitmentPenalty reflects how costly it is to move each commitment kind.
func commitmentPenalty(kind model.CommitmentKind) int {
	switch kind {
	case model.CommitmentPreferred:
		return 3
	case model.CommitmentFlexible:
		return 1
	default:
		// fixed, and anything unrecognized, is treated as hardest to move
		return 10
	}
}

// capacityPenalty discourages packing already-full days.
func capacityPenalty(capacityUsed float64) int {
	switch {
	case capacityUsed > 90:
		return 5
	case capacityUsed > 70:
		return 2
	default:
		return 0
	}
}

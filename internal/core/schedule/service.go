// Package schedule implements the capacity-aware rescheduling engine: it
// measures how full each day of a child's week is, scores candidate slots
// for moving sessions, and runs the skip / auto-reschedule / redistribute
// workflows against the store.
//
// Workflows are request-scoped and synchronous. Each storage read fetches
// current state, so earlier placements in one call are visible to later
// items; concurrent calls for the same child are not safe without an
// external per-child lock; that is the caller's concern.
package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hearthside/planner/internal/ical"
	"github.com/hearthside/planner/internal/model"
	"github.com/hearthside/planner/internal/store"
)

// Service contains the scheduling engine's business logic.
type Service struct {
	store store.Store
}

// NewService creates a scheduling service over the given store.
func NewService(s store.Store) *Service { return &Service{store: s} }

// Session fetches one session on behalf of transport layers that hold the
// service rather than the store.
func (s *Service) Session(ctx context.Context, childID, sessionID string) (*model.Session, error) {
	return s.store.Sessions().Get(ctx, childID, sessionID)
}

// SkipResult reports the outcome of skipping a session: the catch-up record
// created for the miss plus candidate slots for making it up. No session is
// mutated.
type SkipResult struct {
	CatchUp     *model.CatchUpSession `json:"catchUp"`
	Suggestions []Suggestion          `json:"suggestions"`
}

// SkipAndSuggest records that sess was skipped on missedDate and returns the
// best reschedule candidates without applying any of them.
func (s *Service) SkipAndSuggest(ctx context.Context, childID, sessionID string, missedDate, now time.Time) (*SkipResult, error) {
	sess, err := s.store.Sessions().Get(ctx, childID, sessionID)
	if err != nil {
		return nil, err
	}

	cu, err := s.store.CatchUps().Create(ctx, &model.CatchUpSession{
		SessionID:        sess.SessionID,
		ChildID:          childID,
		TopicID:          sess.TopicID,
		Title:            sess.Title,
		EstimatedMinutes: sess.EstimatedMinutes,
		MissedDate:       dateOnly(missedDate),
		Priority:         priorityFor(sess.Commitment),
	})
	if err != nil {
		return nil, err
	}

	suggestions, err := s.SuggestSlots(ctx, sess, missedDate, now)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("childId", childID).
		Str("sessionId", sessionID).
		Str("catchUpId", cu.CatchUpID).
		Int("suggestions", len(suggestions)).
		Msg("session skipped, catch-up recorded")
	return &SkipResult{CatchUp: cu, Suggestions: suggestions}, nil
}

// priorityFor derives a catch-up priority from the skipped session's
// commitment kind: harder commitments surface first in redistribution.
func priorityFor(kind model.CommitmentKind) int {
	switch kind {
	case model.CommitmentPreferred:
		return 2
	case model.CommitmentFlexible:
		return 3
	default:
		return 1
	}
}

// MovedSession describes one applied reschedule.
type MovedSession struct {
	SessionID  string    `json:"sessionId"`
	Date       time.Time `json:"date"`
	Weekday    int       `json:"weekday"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Difficulty int       `json:"difficulty"`
}

// SkippedSession describes a session a bulk workflow left untouched and why.
type SkippedSession struct {
	SessionID string `json:"sessionId"`
	Reason    string `json:"reason"`
}

// AutoRescheduleResult reports a best-effort bulk reschedule: some sessions
// move, the rest are reported with the reason they stayed put.
type AutoRescheduleResult struct {
	Moved   []MovedSession   `json:"moved"`
	Skipped []SkippedSession `json:"skipped"`
}

// AutoRescheduleFlexible moves eligible sessions to their best suggested
// slot. With no explicit sessionIDs it considers every flexible,
// currently-scheduled session of the child. A move is applied only when the
// top suggestion is recommended and its difficulty is at most 5; everything
// else is reported as skipped, never as an error.
func (s *Service) AutoRescheduleFlexible(ctx context.Context, childID string, reference, now time.Time, sessionIDs []string) (*AutoRescheduleResult, error) {
	var candidates []*model.Session
	if len(sessionIDs) > 0 {
		for _, id := range sessionIDs {
			sess, err := s.store.Sessions().Get(ctx, childID, id)
			if err != nil {
				if model.IsNotFoundError(err) {
					continue
				}
				return nil, err
			}
			candidates = append(candidates, sess)
		}
	} else {
		all, err := s.store.Sessions().ListByChild(ctx, childID)
		if err != nil {
			return nil, err
		}
		for _, sess := range all {
			if sess.Commitment == model.CommitmentFlexible && sess.Status == model.StatusScheduled {
				candidates = append(candidates, sess)
			}
		}
	}

	result := &AutoRescheduleResult{}
	for _, sess := range candidates {
		if !sess.CanBeRescheduled() {
			result.Skipped = append(result.Skipped, SkippedSession{SessionID: sess.SessionID, Reason: "not reschedulable"})
			continue
		}

		suggestions, err := s.SuggestSlots(ctx, sess, reference, now)
		if err != nil {
			return nil, err
		}
		if len(suggestions) == 0 {
			result.Skipped = append(result.Skipped, SkippedSession{SessionID: sess.SessionID, Reason: "no candidate slots"})
			continue
		}

		top := suggestions[0]
		if top.Difficulty > autoApplyMaxDifficulty || !top.Recommended {
			result.Skipped = append(result.Skipped, SkippedSession{SessionID: sess.SessionID, Reason: "best slot not good enough"})
			continue
		}

		date := top.Date
		if _, err := s.store.Sessions().UpdateSchedule(ctx, childID, sess.SessionID, top.Weekday, top.StartTime, top.EndTime, &date); err != nil {
			if model.IsNotFoundError(err) {
				result.Skipped = append(result.Skipped, SkippedSession{SessionID: sess.SessionID, Reason: "session disappeared"})
				continue
			}
			return nil, err
		}
		result.Moved = append(result.Moved, MovedSession{
			SessionID:  sess.SessionID,
			Date:       top.Date,
			Weekday:    top.Weekday,
			StartTime:  top.StartTime,
			EndTime:    top.EndTime,
			Difficulty: top.Difficulty,
		})
	}

	log.Info().
		Str("childId", childID).
		Int("moved", len(result.Moved)).
		Int("skipped", len(result.Skipped)).
		Msg("auto-reschedule completed")
	return result, nil
}

// Redistribution describes one catch-up record resolved into a new session.
type Redistribution struct {
	CatchUpID    string    `json:"catchUpId"`
	NewSessionID string    `json:"newSessionId"`
	Date         time.Time `json:"date"`
	Weekday      int       `json:"weekday"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
}

// RedistributeResult lists successful redistributions only; items that found
// no recommended slot stay pending and are eligible for a future pass.
type RedistributeResult struct {
	Redistributed []Redistribution `json:"redistributed"`
}

// RedistributeCatchUps resolves up to maxBatch pending catch-up records in
// ascending priority order. Each resolved record gets a brand-new flexible
// session placed at the top suggestion anchored at the missed date. Records
// whose originals are gone, or whose best slot is not recommended, are left
// as they are.
func (s *Service) RedistributeCatchUps(ctx context.Context, childID string, maxBatch int, now time.Time) (*RedistributeResult, error) {
	pending, err := s.store.CatchUps().ListPending(ctx, childID)
	if err != nil {
		return nil, err
	}
	if maxBatch > 0 && len(pending) > maxBatch {
		pending = pending[:maxBatch]
	}

	result := &RedistributeResult{}
	for _, cu := range pending {
		orig, err := s.store.Sessions().Get(ctx, childID, cu.SessionID)
		if err != nil {
			if model.IsNotFoundError(err) {
				log.Warn().
					Str("childId", childID).
					Str("catchUpId", cu.CatchUpID).
					Str("sessionId", cu.SessionID).
					Msg("original session missing, catch-up left pending")
				continue
			}
			return nil, err
		}

		suggestions, err := s.SuggestSlots(ctx, orig, cu.MissedDate, now)
		if err != nil {
			return nil, err
		}
		if len(suggestions) == 0 || !suggestions[0].Recommended {
			continue
		}
		top := suggestions[0]

		date := top.Date
		// Catch-up placements are intentionally flexible regardless of the
		// original session's commitment kind.
		created, err := s.store.Sessions().Create(ctx, &model.Session{
			ChildID:          childID,
			TopicID:          cu.TopicID,
			Title:            cu.Title,
			EstimatedMinutes: cu.EstimatedMinutes,
			Status:           model.StatusScheduled,
			Commitment:       model.CommitmentFlexible,
			ScheduledDay:     top.Weekday,
			ScheduledDate:    &date,
			StartTime:        top.StartTime,
			EndTime:          top.EndTime,
		})
		if err != nil {
			return nil, err
		}
		if err := s.store.CatchUps().MarkReassigned(ctx, childID, cu.CatchUpID, created.SessionID); err != nil {
			return nil, err
		}

		result.Redistributed = append(result.Redistributed, Redistribution{
			CatchUpID:    cu.CatchUpID,
			NewSessionID: created.SessionID,
			Date:         top.Date,
			Weekday:      top.Weekday,
			StartTime:    top.StartTime,
			EndTime:      top.EndTime,
		})
	}

	log.Info().
		Str("childId", childID).
		Int("pending", len(pending)).
		Int("redistributed", len(result.Redistributed)).
		Msg("catch-up redistribution completed")
	return result, nil
}

// ImportResult reports a calendar import pass.
type ImportResult struct {
	Events      int `json:"events"`
	Occurrences int `json:"occurrences"`
	Created     int `json:"created"`
	Skipped     int `json:"skipped"`
}

// ImportCalendar parses raw calendar text, expands recurrences and creates a
// fixed, imported time block per occurrence. Occurrences that duplicate a
// previously imported block (same source id, weekday and start) are skipped.
func (s *Service) ImportCalendar(ctx context.Context, childID, content string, now time.Time, loc *time.Location) (*ImportResult, error) {
	if _, err := s.store.Children().Get(ctx, childID); err != nil {
		return nil, err
	}

	events := ical.Parse(content, loc)
	occurrences := ical.Expand(events, now)

	result := &ImportResult{Events: len(events), Occurrences: len(occurrences)}
	for _, occ := range occurrences {
		weekday := isoWeekday(occ.Start)
		start := occ.Start.Format("15:04")
		end := occ.End.Format("15:04")

		if occ.SourceID != "" {
			existing, err := s.store.TimeBlocks().ListBySource(ctx, childID, occ.SourceID)
			if err != nil {
				return nil, err
			}
			dup := false
			for _, b := range existing {
				if b.Weekday == weekday && b.StartTime == start {
					dup = true
					break
				}
			}
			if dup {
				result.Skipped++
				continue
			}
		}

		label := occ.Summary
		if label == "" {
			label = "Imported event"
		}
		if _, err := s.store.TimeBlocks().Create(ctx, &model.TimeBlock{
			ChildID:    childID,
			Weekday:    weekday,
			StartTime:  start,
			EndTime:    end,
			Label:      label,
			Imported:   true,
			Commitment: model.CommitmentFixed,
			SourceID:   occ.SourceID,
		}); err != nil {
			return nil, err
		}
		result.Created++
	}

	log.Info().
		Str("childId", childID).
		Int("events", result.Events).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("calendar import completed")
	return result, nil
}

package ical

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// maxOccurrencesPerEvent is a hard safety cap so that malformed or
	// absurd rules can never allocate unbounded memory.
	maxOccurrencesPerEvent = 100

	// horizonMonths bounds expansion to the actionable future.
	horizonMonths = 6

	// defaultDuration applies when an event has no end timestamp.
	defaultDuration = time.Hour
)

// Expand turns flat events into concrete occurrences. Events without a rule
// pass through as a single occurrence; events without a resolvable start are
// dropped. Recurring events expand one frequency unit at a time until the
// rule's count or until-date, the per-event occurrence cap, or the global
// horizon of now+6 months stops them, whichever comes first.
func Expand(events []CalendarEvent, now time.Time) []Occurrence {
	horizon := now.AddDate(0, horizonMonths, 0)

	out := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		out = append(out, expandEvent(ev, horizon)...)
	}

	log.Debug().
		Int("event_count", len(events)).
		Int("occurrence_count", len(out)).
		Msg("recurrence expansion completed")
	return out
}

func expandEvent(ev CalendarEvent, horizon time.Time) []Occurrence {
	if ev.Start == nil {
		return nil
	}

	start := *ev.Start
	duration := defaultDuration
	if ev.End != nil {
		duration = ev.End.Sub(start)
	}

	if ev.Rule == nil {
		return []Occurrence{makeOccurrence(ev, start, duration)}
	}

	var out []Occurrence
	cur := start
	for len(out) < maxOccurrencesPerEvent && !cur.After(horizon) {
		if ev.Rule.Until != nil && cur.After(*ev.Rule.Until) {
			break
		}
		out = append(out, makeOccurrence(ev, cur, duration))
		if ev.Rule.Count > 0 && len(out) >= ev.Rule.Count {
			break
		}

		// Interval is deliberately not applied: one unit per step.
		switch ev.Rule.Freq {
		case FreqDaily:
			cur = cur.AddDate(0, 0, 1)
		case FreqWeekly:
			cur = cur.AddDate(0, 0, 7)
		case FreqMonthly:
			cur = cur.AddDate(0, 1, 0)
		default:
			// Unknown frequency: keep the first occurrence only.
			return out
		}
	}
	return out
}

func makeOccurrence(ev CalendarEvent, start time.Time, duration time.Duration) Occurrence {
	return Occurrence{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		SourceID:    ev.SourceID,
		Start:       start,
		End:         start.Add(duration),
	}
}

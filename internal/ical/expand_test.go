package ical

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func TestExpand_NoRulePassesThrough(t *testing.T) {
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	events := []CalendarEvent{{Summary: "Dentist", Start: &start, End: &end}}

	occs := Expand(events, testNow)
	if len(occs) != 1 {
		t.Fatalf("want 1 occurrence, got %d", len(occs))
	}
	if !occs[0].Start.Equal(start) || !occs[0].End.Equal(end) {
		t.Fatalf("timing changed: %+v", occs[0])
	}
}

func TestExpand_MissingStartIsDropped(t *testing.T) {
	occs := Expand([]CalendarEvent{{Summary: "broken"}}, testNow)
	if len(occs) != 0 {
		t.Fatalf("want 0 occurrences, got %d", len(occs))
	}
}

func TestExpand_MissingEndDefaultsToOneHour(t *testing.T) {
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	occs := Expand([]CalendarEvent{{Start: &start}}, testNow)
	if len(occs) != 1 {
		t.Fatalf("want 1 occurrence, got %d", len(occs))
	}
	if got := occs[0].End.Sub(occs[0].Start); got != time.Hour {
		t.Fatalf("want 1h duration, got %v", got)
	}
}

func TestExpand_WeeklyCountScenario(t *testing.T) {
	// DTSTART:20240101T090000 DTEND:20240101T093000 RRULE:FREQ=WEEKLY;COUNT=3
	text := "BEGIN:VEVENT\n" +
		"DTSTART:20240101T090000\n" +
		"DTEND:20240101T093000\n" +
		"RRULE:FREQ=WEEKLY;COUNT=3\n" +
		"END:VEVENT\n"

	occs := Expand(Parse(text, time.UTC), testNow)
	if len(occs) != 3 {
		t.Fatalf("want 3 occurrences, got %d", len(occs))
	}
	for i, occ := range occs {
		wantStart := time.Date(2024, 1, 1+7*i, 9, 0, 0, 0, time.UTC)
		if !occ.Start.Equal(wantStart) {
			t.Fatalf("occurrence %d start: want %v, got %v", i, wantStart, occ.Start)
		}
		if got := occ.End.Sub(occ.Start); got != 30*time.Minute {
			t.Fatalf("occurrence %d duration: want 30m, got %v", i, got)
		}
	}
}

func TestExpand_SafetyCapAndHorizon(t *testing.T) {
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	t.Run("absurd count hits occurrence cap", func(t *testing.T) {
		ev := CalendarEvent{Start: &start, Rule: &RecurrenceRule{Freq: FreqDaily, Count: 1_000_000}}
		occs := Expand([]CalendarEvent{ev}, testNow)
		if len(occs) != maxOccurrencesPerEvent {
			t.Fatalf("want %d occurrences, got %d", maxOccurrencesPerEvent, len(occs))
		}
	})

	t.Run("absent count hits occurrence cap before horizon", func(t *testing.T) {
		ev := CalendarEvent{Start: &start, Rule: &RecurrenceRule{Freq: FreqDaily}}
		occs := Expand([]CalendarEvent{ev}, testNow)
		if len(occs) != maxOccurrencesPerEvent {
			t.Fatalf("want %d occurrences, got %d", maxOccurrencesPerEvent, len(occs))
		}
	})

	t.Run("monthly rule bounded by horizon", func(t *testing.T) {
		ev := CalendarEvent{Start: &start, Rule: &RecurrenceRule{Freq: FreqMonthly}}
		occs := Expand([]CalendarEvent{ev}, testNow)
		horizon := testNow.AddDate(0, 6, 0)
		if len(occs) == 0 || len(occs) > 7 {
			t.Fatalf("unexpected occurrence count %d", len(occs))
		}
		for _, occ := range occs {
			if occ.Start.After(horizon) {
				t.Fatalf("occurrence past horizon: %v", occ.Start)
			}
		}
	})
}

func TestExpand_UntilBound(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	ev := CalendarEvent{Start: &start, Rule: &RecurrenceRule{Freq: FreqWeekly, Until: &until}}

	occs := Expand([]CalendarEvent{ev}, testNow)
	// Jan 1, 8, 15 are on or before the until-date; Jan 22 is past it.
	if len(occs) != 3 {
		t.Fatalf("want 3 occurrences, got %d", len(occs))
	}
}

func TestExpand_UnknownFrequencyStopsAfterFirst(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	ev := CalendarEvent{Start: &start, Rule: &RecurrenceRule{Freq: "YEARLY", Count: 10}}

	occs := Expand([]CalendarEvent{ev}, testNow)
	if len(occs) != 1 {
		t.Fatalf("want 1 occurrence, got %d", len(occs))
	}
}

func TestExpand_IntervalIsNotApplied(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	ev := CalendarEvent{Start: &start, Rule: &RecurrenceRule{Freq: FreqDaily, Interval: 5, Count: 3}}

	occs := Expand([]CalendarEvent{ev}, testNow)
	if len(occs) != 3 {
		t.Fatalf("want 3 occurrences, got %d", len(occs))
	}
	// steps by one day despite INTERVAL=5
	if got := occs[1].Start.Sub(occs[0].Start); got != 24*time.Hour {
		t.Fatalf("want 24h step, got %v", got)
	}
}

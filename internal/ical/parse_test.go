package ical

import (
	"testing"
	"time"
)

func TestParse_SingleEvent(t *testing.T) {
	text := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:evt-1\r\n" +
		"SUMMARY:Piano lesson\r\n" +
		"DESCRIPTION:Weekly lesson\r\n" +
		"LOCATION:Community hall\r\n" +
		"DTSTART:20240101T090000\r\n" +
		"DTEND:20240101T093000\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events := Parse(text, time.UTC)
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Summary != "Piano lesson" || ev.Description != "Weekly lesson" || ev.Location != "Community hall" {
		t.Fatalf("unexpected fields: %+v", ev)
	}
	if ev.SourceID != "evt-1" {
		t.Fatalf("want source id evt-1, got %q", ev.SourceID)
	}
	wantStart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if ev.Start == nil || !ev.Start.Equal(wantStart) {
		t.Fatalf("start: got %v", ev.Start)
	}
	if ev.End == nil || !ev.End.Equal(wantStart.Add(30*time.Minute)) {
		t.Fatalf("end: got %v", ev.End)
	}
}

func TestParse_ParameterizedKeyReducesToBase(t *testing.T) {
	text := "BEGIN:VEVENT\nDTSTART;TZID=Europe/Stockholm:20240101T090000\nEND:VEVENT\n"

	loc, _ := time.LoadLocation("Europe/Stockholm")
	events := Parse(text, loc)
	if len(events) != 1 || events[0].Start == nil {
		t.Fatalf("parameterized DTSTART not dispatched: %+v", events)
	}
	if got := events[0].Start.In(loc).Hour(); got != 9 {
		t.Fatalf("want 09:00 local, got hour %d", got)
	}
}

func TestParse_TimestampShapes(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	tests := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{"date only is local midnight", "20240315",
			timePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, loc))},
		{"bare datetime is local", "20240315T140000",
			timePtr(time.Date(2024, 3, 15, 14, 0, 0, 0, loc))},
		{"zone marker is utc", "20240315T140000Z",
			timePtr(time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC))},
		{"rfc3339 fallback", "2024-03-15T14:00:00Z",
			timePtr(time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC))},
		{"garbage is nil", "next tuesday", nil},
		{"empty is nil", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseTimestamp(tc.value, loc)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("want nil, got %v", got)
				}
				return
			}
			if got == nil || !got.Equal(*tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParse_MalformedLinesAreSkipped(t *testing.T) {
	text := "SUMMARY:outside any block\n" +
		"BEGIN:VEVENT\n" +
		"no colon here\n" +
		"SUMMARY:Kept\n" +
		":orphan value\n" +
		"DTSTART:garbage\n" +
		"END:VEVENT\n"

	events := Parse(text, time.UTC)
	if len(events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events))
	}
	if events[0].Summary != "Kept" {
		t.Fatalf("summary: got %q", events[0].Summary)
	}
	// unparseable start stays nil; the event is dropped later, not here
	if events[0].Start != nil {
		t.Fatalf("want nil start, got %v", events[0].Start)
	}
}

func TestParse_NoEventBlocks(t *testing.T) {
	if events := Parse("just some text\nwith lines\n", time.UTC); len(events) != 0 {
		t.Fatalf("want 0 events, got %d", len(events))
	}
	if events := Parse("", time.UTC); len(events) != 0 {
		t.Fatalf("want 0 events for empty input, got %d", len(events))
	}
}

func TestParseRule(t *testing.T) {
	until := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value string
		want  RecurrenceRule
	}{
		{"weekly with count", "FREQ=WEEKLY;COUNT=3",
			RecurrenceRule{Freq: FreqWeekly, Interval: 1, Count: 3}},
		{"interval parsed but informational", "FREQ=DAILY;INTERVAL=2",
			RecurrenceRule{Freq: FreqDaily, Interval: 2}},
		{"until", "FREQ=MONTHLY;UNTIL=20240601",
			RecurrenceRule{Freq: FreqMonthly, Interval: 1, Until: &until}},
		{"bad pairs ignored", "FREQ=WEEKLY;COUNT=abc;NONSENSE",
			RecurrenceRule{Freq: FreqWeekly, Interval: 1}},
		{"unknown freq preserved", "FREQ=YEARLY",
			RecurrenceRule{Freq: "YEARLY", Interval: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseRule(tc.value, time.UTC)
			if got == nil {
				t.Fatal("want rule, got nil")
			}
			if got.Freq != tc.want.Freq || got.Interval != tc.want.Interval || got.Count != tc.want.Count {
				t.Fatalf("want %+v, got %+v", tc.want, got)
			}
			if (got.Until == nil) != (tc.want.Until == nil) {
				t.Fatalf("until mismatch: want %v, got %v", tc.want.Until, got.Until)
			}
			if got.Until != nil && !got.Until.Equal(*tc.want.Until) {
				t.Fatalf("until: want %v, got %v", tc.want.Until, got.Until)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

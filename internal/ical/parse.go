package ical

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	beginEvent = "BEGIN:VEVENT"
	endEvent   = "END:VEVENT"
)

// Parse scans raw calendar text and returns the flat events it contains.
// The scan is line-oriented and stateful: property lines only count while
// inside a BEGIN/END event block. Malformed or out-of-block lines are
// silently skipped; Parse never fails. Timestamps without an explicit zone
// are interpreted in loc.
func Parse(text string, loc *time.Location) []CalendarEvent {
	if loc == nil {
		loc = time.UTC
	}

	var events []CalendarEvent
	var cur *CalendarEvent

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}

		switch strings.ToUpper(line) {
		case beginEvent:
			cur = &CalendarEvent{}
			continue
		case endEvent:
			if cur != nil {
				events = append(events, *cur)
				cur = nil
			}
			continue
		}
		if cur == nil {
			continue
		}

		key, value, ok := splitProperty(line)
		if !ok {
			continue
		}
		switch key {
		case "SUMMARY":
			cur.Summary = value
		case "DESCRIPTION":
			cur.Description = value
		case "LOCATION":
			cur.Location = value
		case "UID":
			cur.SourceID = value
		case "DTSTART":
			cur.Start = parseTimestamp(value, loc)
		case "DTEND":
			cur.End = parseTimestamp(value, loc)
		case "RRULE":
			cur.Rule = parseRule(value, loc)
		}
	}

	log.Debug().Int("event_count", len(events)).Msg("calendar text parsed")
	return events
}

// splitProperty splits "KEY;PARAM=X:VALUE" into its base key and value.
// Parameters after ';' are discarded so that e.g. DTSTART;TZID=... still
// dispatches as DTSTART.
func splitProperty(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = line[:idx]
	value = strings.TrimSpace(line[idx+1:])
	if semi := strings.Index(key, ";"); semi >= 0 {
		key = key[:semi]
	}
	return strings.ToUpper(strings.TrimSpace(key)), value, true
}

// parseTimestamp interprets a calendar timestamp by shape:
//
//	20240101          date only, midnight in loc
//	20240101T090000   local date-time in loc
//	20240101T090000Z  UTC date-time
//
// Anything else falls back to a handful of generic layouts. Unparseable
// values yield nil; the event survives, and expansion drops it later if the
// start is missing.
func parseTimestamp(v string, loc *time.Location) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	if len(v) == 8 {
		if t, err := time.ParseInLocation("20060102", v, loc); err == nil {
			return &t
		}
		return nil
	}
	if len(v) == 16 && (strings.HasSuffix(v, "Z") || strings.HasSuffix(v, "z")) {
		if t, err := time.ParseInLocation("20060102T150405", v[:15], time.UTC); err == nil {
			return &t
		}
		return nil
	}
	if len(v) == 15 {
		if t, err := time.ParseInLocation("20060102T150405", v, loc); err == nil {
			return &t
		}
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return &t
		}
	}
	return nil
}

// parseRule reads an RRULE value such as "FREQ=WEEKLY;COUNT=3;UNTIL=...".
// Unparseable key/value pairs are ignored rather than failing the rule.
func parseRule(v string, loc *time.Location) *RecurrenceRule {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	rule := &RecurrenceRule{Interval: 1}
	for _, part := range strings.Split(v, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])
		switch key {
		case "FREQ":
			rule.Freq = Frequency(strings.ToUpper(val))
		case "COUNT":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				rule.Count = n
			}
		case "INTERVAL":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				rule.Interval = n
			}
		case "UNTIL":
			rule.Until = parseTimestamp(val, loc)
		}
	}
	return rule
}

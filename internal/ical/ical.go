// Package ical turns raw calendar-file text into concrete event occurrences.
// Parsing is deliberately tolerant: malformed lines are skipped, never fatal.
package ical

import "time"

// Frequency is a recurrence frequency keyword. Only daily, weekly and
// monthly expand; any other value stops expansion after the first occurrence.
type Frequency string

const (
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
)

// RecurrenceRule is the subset of RRULE the planner understands.
//
// Interval is parsed but not applied: expansion always advances by exactly
// one frequency unit per step. This mirrors the product's intentionally
// narrowed recurrence support.
type RecurrenceRule struct {
	Freq     Frequency
	Interval int
	Count    int
	Until    *time.Time
}

// CalendarEvent is a flat event record as produced by the parser, before any
// recurrence expansion. A nil Start marks the event as unplaceable; such
// events are dropped during expansion rather than during parsing.
type CalendarEvent struct {
	Summary     string
	Description string
	Location    string
	SourceID    string
	Start       *time.Time
	End         *time.Time
	Rule        *RecurrenceRule
}

// Occurrence is one concrete, dated instance of a possibly-recurring event.
type Occurrence struct {
	Summary     string
	Description string
	Location    string
	SourceID    string
	Start       time.Time
	End         time.Time
}
